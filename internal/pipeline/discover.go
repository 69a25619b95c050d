package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverImages lists dir (non-recursively) and returns the paths of
// entries whose lowercased names end with one of exts, in directory order
// (sorted by name). Subdirectories are ignored. exts must be lowercase.
func DiscoverImages(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if hasExtension(e.Name(), exts) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) && len(lower) > len(ext) {
			return true
		}
	}
	return false
}
