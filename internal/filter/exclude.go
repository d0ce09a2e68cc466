package filter

import (
	"strings"

	"github.com/Geun-Oh/logview/internal/entry"
)

// ExcludeFilter rejects entries whose header contains any excluded pattern.
// Match returns true if the entry should PASS. Blank patterns are ignored.
type ExcludeFilter struct {
	patterns []string
	fold     bool
}

// NewExcludeFilter creates a filter that rejects entries containing any of the patterns.
func NewExcludeFilter(patterns ...string) *ExcludeFilter {
	kept := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return &ExcludeFilter{patterns: kept}
}

// FoldCase makes the filter ignore case and returns it.
func (f *ExcludeFilter) FoldCase() *ExcludeFilter {
	f.fold = true
	for i, p := range f.patterns {
		f.patterns[i] = strings.ToLower(p)
	}
	return f
}

// Match returns true if the header does NOT contain any excluded pattern.
func (f *ExcludeFilter) Match(e *entry.LogEntry) bool {
	header := e.Header()
	if f.fold {
		header = strings.ToLower(header)
	}
	for _, p := range f.patterns {
		if strings.Contains(header, p) {
			return false
		}
	}
	return true
}

// Name returns the filter description.
func (f *ExcludeFilter) Name() string {
	return "exclude:" + strings.Join(f.patterns, ",")
}
