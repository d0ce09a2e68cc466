// Package files discovers log files on disk.
package files

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

var datedName = regexp.MustCompile(`-(\d{4}-\d{2}-\d{2})\.log$`)

// LogFile is one discovered log file.
type LogFile struct {
	Path    string
	Date    string // "YYYY-MM-DD" for daily files, empty otherwise
	Size    int64
	ModTime time.Time
}

// Name returns the file's base name.
func (f LogFile) Name() string {
	return filepath.Base(f.Path)
}

// Discover expands pattern relative to root and returns matching files,
// newest date first. Undated files sort after dated ones by name.
// Supports recursive patterns like logs/**/*.log via doublestar.
func Discover(root, pattern string) ([]LogFile, error) {
	if !filepath.IsAbs(pattern) && root != "" {
		pattern = filepath.Join(root, pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}

	found := make([]LogFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		found = append(found, LogFile{
			Path:    m,
			Date:    DateOf(m),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(found, func(a, b LogFile) int {
		switch {
		case a.Date != "" && b.Date == "":
			return -1
		case a.Date == "" && b.Date != "":
			return 1
		case a.Date != b.Date:
			return cmp.Compare(b.Date, a.Date)
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return found, nil
}

// DateOf extracts the date of a daily log file name such as
// laravel-2024-01-31.log.
func DateOf(path string) string {
	m := datedName.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return ""
	}
	if _, err := time.Parse(time.DateOnly, m[1]); err != nil {
		return ""
	}
	return m[1]
}
