package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/assetopt/internal/config"
)

// Invocation is one external command: program plus arguments.
type Invocation struct {
	Program string
	Args    []string
}

// String renders the command line with shell-style quoting, for logs.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quoteArg(inv.Program))
	for _, a := range inv.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`{}*?;&|<>()") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// errEmptyCommand is returned when a configured tool prefix is empty.
var errEmptyCommand = errors.New("empty tool command")

// newInvocation splits a configured command prefix (e.g. ["npx",
// "gltf-transform"]) into program and leading arguments, then appends args.
func newInvocation(prefix []string, args ...string) (Invocation, error) {
	if len(prefix) == 0 || prefix[0] == "" {
		return Invocation{}, errEmptyCommand
	}
	all := make([]string, 0, len(prefix)-1+len(args))
	all = append(all, prefix[1:]...)
	all = append(all, args...)
	return Invocation{Program: prefix[0], Args: all}, nil
}

// WebPInvocation builds the image encoder command:
//
//	<prefix> --webp '<json options>' <src> -d <outDir>
//
// The encoder writes <outDir>/<stem>.webp.
func WebPInvocation(prefix []string, opts config.WebPOptions, src, outDir string) (Invocation, error) {
	blob, err := json.Marshal(opts)
	if err != nil {
		return Invocation{}, fmt.Errorf("encode webp options: %w", err)
	}
	return newInvocation(prefix, "--webp", string(blob), src, "-d", outDir)
}

// DracoInvocation builds the model compressor command:
//
//	<prefix> draco <src> <dst>
func DracoInvocation(prefix []string, src, dst string) (Invocation, error) {
	return newInvocation(prefix, "draco", src, dst)
}

// VersionInvocation builds a "--version" probe for a configured tool.
func VersionInvocation(prefix []string) (Invocation, error) {
	return newInvocation(prefix, "--version")
}
