package diffcache

import (
	"fmt"
	"path"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidatePatterns checks that every exclude glob is well formed
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Excluded reports whether filename matches any pattern, tried against
// both the full path and the base name.
func Excluded(filename string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, filename); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, path.Base(filename)); ok {
			return true
		}
	}
	return false
}

// Filter drops files matching patterns and returns how many were hidden
func Filter(files []models.DiffFile, patterns []string) ([]models.DiffFile, int) {
	if len(patterns) == 0 {
		return files, 0
	}
	kept := make([]models.DiffFile, 0, len(files))
	for _, f := range files {
		if Excluded(f.Filename, patterns) {
			continue
		}
		kept = append(kept, f)
	}
	return kept, len(files) - len(kept)
}
