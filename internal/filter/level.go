package filter

import (
	"strings"

	"github.com/Geun-Oh/logview/internal/entry"
)

// LevelFilter passes entries whose level name equals one of the given names,
// ignoring case. A name that is not a level simply matches nothing.
type LevelFilter struct {
	names []string
}

// NewLevelFilter creates a filter for the given level names.
// Example: NewLevelFilter("error", "critical")
func NewLevelFilter(names ...string) *LevelFilter {
	return &LevelFilter{names: names}
}

// Match returns true if the entry's level is one of the filter's names.
func (f *LevelFilter) Match(e *entry.LogEntry) bool {
	for _, n := range f.names {
		if e.IsSameLevel(n) {
			return true
		}
	}
	return false
}

// Name returns the filter description.
func (f *LevelFilter) Name() string {
	return "level:" + strings.Join(f.names, ",")
}

// MinLevelFilter passes entries at least as severe as a threshold.
type MinLevelFilter struct {
	min entry.Level
}

// NewMinLevelFilter creates a severity threshold filter. Unknown-level
// entries never pass.
func NewMinLevelFilter(min entry.Level) *MinLevelFilter {
	return &MinLevelFilter{min: min}
}

// Match returns true if the entry is at or above the threshold.
func (f *MinLevelFilter) Match(e *entry.LogEntry) bool {
	l := e.Level()
	return l.Known() && (l == f.min || l.MoreSevereThan(f.min))
}

// Name returns the filter description.
func (f *MinLevelFilter) Name() string {
	return "min-level:" + f.min.String()
}
