package config

// This file binds CLI flags. Flags are parsed into FlagValues first and
// copied onto Config by ApplyFlags only when the user actually set them, so
// values from the config file and environment hold unless overridden.

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// FlagValues receives raw flag values before they are applied to a Config.
type FlagValues struct {
	ConfigFile string
	Skip       SkipPolicy
	Timeout    time.Duration
	DryRun     bool
	ReportFile string
	LogFile    string
	Verbose    bool

	// Image command.
	Dirs       []string
	Extensions []string
	Quality    int

	// Model command.
	Pairs []string

	// Negated/override flags, applied after parse.
	force      bool
	forceColor bool
	noColor    bool
}

// RegisterFlags registers the flags shared by every pipeline command.
func RegisterFlags(fs *pflag.FlagSet, v *FlagValues) {
	v.Skip = SkipExists
	fs.StringVarP(&v.ConfigFile, "config", "c", "", "YAML config file (default: $"+EnvConfig+")")
	fs.Var(&skipPolicyValue{&v.Skip}, "skip", "When to skip existing outputs: exists | newer | never")
	fs.BoolVarP(&v.force, "force", "f", false, "Reconvert even when outputs exist (same as --skip never)")
	fs.DurationVar(&v.Timeout, "timeout", 10*time.Minute, "Timeout for each external tool invocation")
	fs.BoolVarP(&v.DryRun, "dry-run", "d", false, "Preview only; do not run external tools")
	fs.StringVar(&v.ReportFile, "report", "", "Write a YAML run report to this path")
	fs.StringVarP(&v.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolVarP(&v.Verbose, "verbose", "v", false, "Verbose output (echo tool stderr live)")
	fs.BoolVar(&v.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&v.noColor, "no-color", false, "Disable colored logs")
}

// RegisterImageFlags registers --dir, --ext and --quality.
func RegisterImageFlags(fs *pflag.FlagSet, v *FlagValues) {
	fs.StringArrayVar(&v.Dirs, "dir", nil, "Image directory to scan (repeatable; replaces configured list)")
	fs.StringSliceVar(&v.Extensions, "ext", nil, "Accepted image extensions (e.g. jpg,png)")
	fs.IntVarP(&v.Quality, "quality", "q", 85, "WebP quality (0-100)")
}

// RegisterModelFlags registers --pair.
func RegisterModelFlags(fs *pflag.FlagSet, v *FlagValues) {
	fs.StringArrayVar(&v.Pairs, "pair", nil, "Model pair source=destination (repeatable; replaces configured list)")
}

// ApplyFlags copies every flag the user set on fs into cfg.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config, v *FlagValues) error {
	if fs.Changed("skip") {
		cfg.SkipPolicy = v.Skip
	}
	if fs.Changed("timeout") {
		cfg.ToolTimeout = v.Timeout
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = v.DryRun
	}
	if fs.Changed("report") {
		cfg.ReportFile = v.ReportFile
	}
	if fs.Changed("log") {
		cfg.LogFile = v.LogFile
	}
	if fs.Changed("verbose") {
		cfg.Verbose = v.Verbose
	}
	if fs.Changed("dir") {
		cfg.ImageDirs = v.Dirs
	}
	if fs.Changed("ext") {
		cfg.ImageExtensions = v.Extensions
	}
	if fs.Changed("quality") {
		cfg.WebP.Quality = v.Quality
	}
	if fs.Changed("pair") {
		pairs := make([]ModelPair, 0, len(v.Pairs))
		for _, raw := range v.Pairs {
			p, err := ParseModelPair(raw)
			if err != nil {
				return err
			}
			pairs = append(pairs, p)
		}
		cfg.ModelPairs = pairs
	}

	if v.force {
		cfg.SkipPolicy = SkipNever
	}
	if v.noColor {
		cfg.ColorMode = ColorNever
	} else if v.forceColor {
		cfg.ColorMode = ColorAlways
	}
	return nil
}

// skipPolicyValue implements pflag.Value for SkipPolicy.
type skipPolicyValue struct{ p *SkipPolicy }

func (v *skipPolicyValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *skipPolicyValue) Set(s string) error {
	switch SkipPolicy(s) {
	case SkipExists, SkipNewer, SkipNever:
		*v.p = SkipPolicy(s)
		return nil
	}
	return fmt.Errorf("invalid skip policy %q (use exists, newer or never)", s)
}

func (v *skipPolicyValue) Type() string { return "policy" }
