package pipeline

import (
	"os"

	"github.com/backmassage/assetopt/internal/config"
)

// ShouldSkip applies the pre-conversion check. It returns true and a short
// reason when the target must not be converted.
//
// SkipExists is a plain existence test: a stale or partial destination is
// still skipped. SkipNewer converts again when the source was modified
// after the destination. SkipNever always converts.
func ShouldSkip(policy config.SkipPolicy, t Target) (bool, string) {
	if policy == config.SkipNever {
		return false, ""
	}
	dst, err := os.Stat(t.Destination)
	if err != nil {
		return false, ""
	}
	if policy != config.SkipNewer {
		return true, "exists"
	}
	src, err := os.Stat(t.Source)
	if err != nil {
		// Nothing to compare against; leave the existing output alone.
		return true, "exists"
	}
	if src.ModTime().After(dst.ModTime()) {
		return false, ""
	}
	return true, "up to date"
}
