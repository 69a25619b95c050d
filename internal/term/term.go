// Package term holds the console colour state and terminal detection.
//
// Output is coloured by role (info, success, failure...) rather than by
// named colour, so the logger, banner and result table stay consistent.
// [Configure] runs once at startup; while colours are disabled every role
// renders as the empty string.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/assetopt/internal/config"
)

// Role is a semantic colour slot.
type Role int

const (
	Plain   Role = iota // No colour.
	Info                // INFO lines.
	Success             // SUCCESS lines, successful rows.
	Warn                // WARN lines, size growth.
	Error               // ERROR lines, failed rows.
	Debug               // DEBUG lines.
	Accent              // Banner.
	Muted               // Skipped rows.
	numRoles
)

const reset = "\033[0m"

var palette = [numRoles]string{
	Info:    "\033[1;94m",
	Success: "\033[1;92m",
	Warn:    "\033[1;93m",
	Error:   "\033[1;91m",
	Debug:   "\033[1;96m",
	Accent:  "\033[1;95m",
	Muted:   "\033[2m",
}

var enabled bool

// Configure resolves mode against the environment. Called from
// [logging.NewLogger].
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
}

// Enabled reports whether ANSI colours are active.
func Enabled() bool { return enabled }

// Code returns the escape sequence for r, or "" when colours are off.
func Code(r Role) string {
	if !enabled || r <= Plain || r >= numRoles {
		return ""
	}
	return palette[r]
}

// Reset returns the reset sequence, or "" when colours are off.
func Reset() string {
	if !enabled {
		return ""
	}
	return reset
}

// Paint wraps s in the colour for r.
func Paint(r Role, s string) string {
	code := Code(r)
	if code == "" {
		return s
	}
	return code + s + reset
}

// resolve honours an explicit mode, otherwise requires a TTY on stdout,
// no NO_COLOR (https://no-color.org) and TERM other than "dumb".
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
