package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/assetopt/internal/config"
)

// Output is what a converter reports after the tool exits successfully.
type Output struct {
	// Path is the file the tool actually produced, or "" when it exited
	// cleanly but the expected file is not there.
	Path string
	// Warnings is the tool's stderr, which may be non-empty on success.
	Warnings string
}

// WebPConverter encodes raster images to WebP. The encoder only accepts an
// output directory and names the file itself (<stem>.webp), so Convert
// locates the produced file from the source name rather than assuming dst.
type WebPConverter struct {
	Runner  Runner
	Command []string
	Options config.WebPOptions
}

// Name identifies the converter in logs.
func (c *WebPConverter) Name() string { return "WebP" }

// Convert runs the encoder for src, writing into dst's directory. A clean
// exit without the expected file is not an error: Output.Path is empty. A
// file left over from an earlier run only counts if this run rewrote it.
func (c *WebPConverter) Convert(ctx context.Context, src, dst string) (Output, error) {
	outDir := filepath.Dir(dst)
	inv, err := WebPInvocation(c.Command, c.Options, src, outDir)
	if err != nil {
		return Output{}, err
	}
	produced := filepath.Join(outDir, stem(src)+".webp")
	before := stampOf(produced)

	res, err := c.Runner.Run(ctx, inv)
	out := Output{Warnings: strings.TrimSpace(res.Stderr)}
	if err != nil {
		return out, err
	}
	if written(produced, before) {
		out.Path = produced
	}
	return out, nil
}

// DracoConverter applies Draco geometry compression to glTF binaries.
type DracoConverter struct {
	Runner  Runner
	Command []string
}

// Name identifies the converter in logs.
func (c *DracoConverter) Name() string { return "Draco" }

// Convert compresses src into dst. A clean exit that leaves dst absent or
// untouched is reported as [ErrOutputMissing].
func (c *DracoConverter) Convert(ctx context.Context, src, dst string) (Output, error) {
	inv, err := DracoInvocation(c.Command, src, dst)
	if err != nil {
		return Output{}, err
	}
	before := stampOf(dst)

	res, err := c.Runner.Run(ctx, inv)
	out := Output{Warnings: strings.TrimSpace(res.Stderr)}
	if err != nil {
		return out, err
	}
	if !written(dst, before) {
		return out, fmt.Errorf("%s: %w", dst, ErrOutputMissing)
	}
	out.Path = dst
	return out, nil
}

// stem returns the base name of path without its final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// stamp identifies one version of a file on disk.
type stamp struct {
	exists  bool
	modTime time.Time
	size    int64
}

func stampOf(path string) stamp {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return stamp{}
	}
	return stamp{exists: true, modTime: fi.ModTime(), size: fi.Size()}
}

// written reports whether path is a regular file that differs from before.
func written(path string, before stamp) bool {
	after := stampOf(path)
	if !after.exists {
		return false
	}
	return !before.exists || !after.modTime.Equal(before.modTime) || after.size != before.size
}
