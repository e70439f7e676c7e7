// Package inputs expands a track glob into an ordered list of files.
package inputs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"

	"chapterize/internal/services"
)

// Resolve expands pattern, keeps regular files, and orders them naturally so
// "2.mp3" sorts before "10.mp3". Patterns may use "**" to descend into
// subdirectories. An empty match set is not an error; callers decide.
func Resolve(pattern string) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, services.Wrap(services.ErrValidation, "resolve", "glob", "empty input pattern", nil)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "resolve", "glob", fmt.Sprintf("pattern %q", pattern), err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, match)
	}
	Sort(files)
	return files, nil
}

// Sort orders paths naturally in place. Ties fall back to byte order so the
// result never depends on the input order.
func Sort(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

// Exclude returns paths without any entry naming the same file as one of
// drop. Both sides are compared in absolute form, so "./book.m4b" matches
// "/books/book.m4b" when run from /books.
func Exclude(paths []string, drop ...string) []string {
	dropped := make(map[string]struct{}, len(drop))
	for _, path := range drop {
		dropped[absPath(path)] = struct{}{}
	}
	kept := paths[:0:0]
	for _, path := range paths {
		if _, ok := dropped[absPath(path)]; ok {
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
