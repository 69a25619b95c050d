package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/backmassage/assetopt/internal/config"
)

// ErrDirectoryUnreadable wraps enumeration failures for a configured
// directory. The run logs it and continues with zero targets for that group.
var ErrDirectoryUnreadable = errors.New("directory unreadable")

// Target is one source-to-destination mapping.
type Target struct {
	Source      string
	Destination string
}

// Source produces the targets of one group. Implementations hold no
// iteration state, so Targets may be called any number of times.
type Source interface {
	Targets() ([]Target, error)
}

// DirSource lists a single directory for files whose names end in one of
// Extensions (case-insensitive) and maps each to <stem><TargetExt> beside it.
type DirSource struct {
	Dir        string
	Extensions []string
	TargetExt  string
}

// Targets lists Dir afresh on every call.
func (s DirSource) Targets() ([]Target, error) {
	files, err := DiscoverImages(s.Dir, s.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnreadable, s.Dir, err)
	}
	targets := make([]Target, 0, len(files))
	for _, f := range files {
		targets = append(targets, Target{Source: f, Destination: replaceExt(f, s.TargetExt)})
	}
	return targets, nil
}

// PairSource is an explicit, configured list of targets.
type PairSource []config.ModelPair

// Targets returns a copy of the configured pairs.
func (s PairSource) Targets() ([]Target, error) {
	targets := make([]Target, 0, len(s))
	for _, p := range s {
		targets = append(targets, Target{Source: p.Source, Destination: p.Destination})
	}
	return targets, nil
}

// TargetList is a fixed slice of targets, mostly useful in tests.
type TargetList []Target

// Targets returns a copy of the list.
func (l TargetList) Targets() ([]Target, error) { return slices.Clone([]Target(l)), nil }

// replaceExt swaps the final extension of path for ext, keeping the directory.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
