// Package config holds runtime configuration: defaults, YAML/env overlays,
// CLI flag binding, and validation. The defaults reproduce the asset lists
// and encoder settings the site build has always used.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// SkipPolicy decides when an existing destination file short-circuits a conversion.
type SkipPolicy string

const (
	SkipExists SkipPolicy = "exists" // Skip whenever the destination exists (default).
	SkipNewer  SkipPolicy = "newer"  // Skip only when the destination is at least as new as the source.
	SkipNever  SkipPolicy = "never"  // Always convert. Set by --force.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ModelPair is one explicit (source, destination) entry of the model pipeline.
type ModelPair struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// WebPOptions is the encoder parameter blob handed to the image tool as JSON.
// Field order matches the encoder's own option listing.
type WebPOptions struct {
	Quality          int `json:"quality" yaml:"quality"`
	TargetSize       int `json:"target_size" yaml:"target_size"`
	TargetPSNR       int `json:"target_PSNR" yaml:"target_psnr"`
	Method           int `json:"method" yaml:"method"`
	SNSStrength      int `json:"sns_strength" yaml:"sns_strength"`
	FilterStrength   int `json:"filter_strength" yaml:"filter_strength"`
	FilterSharpness  int `json:"filter_sharpness" yaml:"filter_sharpness"`
	FilterType       int `json:"filter_type" yaml:"filter_type"`
	Partitions       int `json:"partitions" yaml:"partitions"`
	Segments         int `json:"segments" yaml:"segments"`
	Pass             int `json:"pass" yaml:"pass"`
	ShowCompressed   int `json:"show_compressed" yaml:"show_compressed"`
	Preprocessing    int `json:"preprocessing" yaml:"preprocessing"`
	Autofilter       int `json:"autofilter" yaml:"autofilter"`
	PartitionLimit   int `json:"partition_limit" yaml:"partition_limit"`
	AlphaCompression int `json:"alpha_compression" yaml:"alpha_compression"`
	AlphaFiltering   int `json:"alpha_filtering" yaml:"alpha_filtering"`
	AlphaQuality     int `json:"alpha_quality" yaml:"alpha_quality"`
	Lossless         int `json:"lossless" yaml:"lossless"`
	Exact            int `json:"exact" yaml:"exact"`
	ImageHint        int `json:"image_hint" yaml:"image_hint"`
	EmulateJPEGSize  int `json:"emulate_jpeg_size" yaml:"emulate_jpeg_size"`
	ThreadLevel      int `json:"thread_level" yaml:"thread_level"`
	LowMemory        int `json:"low_memory" yaml:"low_memory"`
	NearLossless     int `json:"near_lossless" yaml:"near_lossless"`
	UseDeltaPalette  int `json:"use_delta_palette" yaml:"use_delta_palette"`
	UseSharpYUV      int `json:"use_sharp_yuv" yaml:"use_sharp_yuv"`
}

// DefaultWebPOptions returns the fixed high-quality WebP tuning.
func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		Quality:          85,
		Method:           4,
		SNSStrength:      50,
		FilterStrength:   60,
		FilterType:       1,
		Segments:         4,
		Pass:             1,
		AlphaCompression: 1,
		AlphaFiltering:   1,
		AlphaQuality:     100,
		NearLossless:     100,
	}
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile], [ApplyEnv] and [ApplyFlags], then passed (by
// pointer) to the packages that need it.
type Config struct {
	// Image pipeline.
	ImageDirs       []string    `yaml:"image_dirs"`
	ImageExtensions []string    `yaml:"image_extensions"` // Lowercase, leading dot.
	WebP            WebPOptions `yaml:"webp"`
	ImageTool       []string    `yaml:"image_tool"` // Default: npx @squoosh/cli.

	// Model pipeline.
	ModelPairs []ModelPair `yaml:"models"`
	ModelTool  []string    `yaml:"model_tool"` // Default: npx gltf-transform.

	// Behavior.
	SkipPolicy  SkipPolicy    `yaml:"skip"`
	ToolTimeout time.Duration `yaml:"timeout"` // Default: 10m. Per external invocation.
	DryRun      bool          `yaml:"dry_run"`

	// Display and logging.
	Verbose    bool      `yaml:"verbose"`
	ColorMode  ColorMode `yaml:"color"`
	LogFile    string    `yaml:"log_file"`
	ReportFile string    `yaml:"report_file"`
}

// DefaultConfig returns the built-in asset lists and encoder settings.
func DefaultConfig() Config {
	return Config{
		ImageDirs: []string{
			"static/honda",
			"static/maybach",
			"static/mazda",
			"static/vios",
		},
		ImageExtensions: []string{".jpg", ".jpeg", ".png"},
		WebP:            DefaultWebPOptions(),
		ImageTool:       []string{"npx", "@squoosh/cli"},
		ModelPairs: []ModelPair{
			{Source: "static/honda_city_rs.glb", Destination: "static/honda_city_rs_optimized.glb"},
			{Source: "static/mercedes-benz_maybach_2022.glb", Destination: "static/mercedes-benz_maybach_2022_optimized.glb"},
			{Source: "static/mazda-3.glb", Destination: "static/mazda-3_optimized.glb"},
		},
		ModelTool:   []string{"npx", "gltf-transform"},
		SkipPolicy:  SkipExists,
		ToolTimeout: 10 * time.Minute,
		ColorMode:   ColorAuto,
	}
}

// NormalizeExtensions lowercases each extension and adds a missing leading
// dot. Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Validate checks enum fields and value ranges, and normalizes the
// extension list in place.
func (c *Config) Validate() error {
	switch c.SkipPolicy {
	case SkipExists, SkipNewer, SkipNever:
		// valid
	default:
		return fmt.Errorf("invalid skip policy %q (use 'exists', 'newer' or 'never')", c.SkipPolicy)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.ToolTimeout <= 0 {
		return errors.New("tool timeout must be positive")
	}
	if c.WebP.Quality < 0 || c.WebP.Quality > 100 {
		return fmt.Errorf("invalid WebP quality %d (use 0-100)", c.WebP.Quality)
	}

	c.ImageExtensions = NormalizeExtensions(c.ImageExtensions)
	if len(c.ImageExtensions) == 0 {
		return errors.New("at least one image extension is required")
	}
	if len(c.ImageTool) == 0 || c.ImageTool[0] == "" {
		return errors.New("image tool command must not be empty")
	}
	if len(c.ModelTool) == 0 || c.ModelTool[0] == "" {
		return errors.New("model tool command must not be empty")
	}

	for i, p := range c.ModelPairs {
		if p.Source == "" || p.Destination == "" {
			return fmt.Errorf("model pair %d: source and destination are required", i+1)
		}
		if p.Source == p.Destination {
			return fmt.Errorf("model pair %d: destination must differ from source (%s)", i+1, p.Source)
		}
	}
	return nil
}

// ParseModelPair parses a "source=destination" flag value.
func ParseModelPair(raw string) (ModelPair, error) {
	src, dst, ok := strings.Cut(raw, "=")
	src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
	if !ok || src == "" || dst == "" {
		return ModelPair{}, fmt.Errorf("invalid model pair %q (use source=destination)", raw)
	}
	return ModelPair{Source: src, Destination: dst}, nil
}
