package filter

import (
	"strings"

	"github.com/Geun-Oh/logview/internal/entry"
)

// KeywordFilter matches entries whose header or stack contains a keyword.
type KeywordFilter struct {
	keyword string
	fold    bool
}

// NewKeywordFilter creates a filter that matches entries containing the keyword.
func NewKeywordFilter(keyword string) *KeywordFilter {
	return &KeywordFilter{keyword: keyword}
}

// FoldCase makes the filter ignore case and returns it.
func (f *KeywordFilter) FoldCase() *KeywordFilter {
	f.fold = true
	f.keyword = strings.ToLower(f.keyword)
	return f
}

// Match reports whether the header or stack contains the keyword.
func (f *KeywordFilter) Match(e *entry.LogEntry) bool {
	if !f.fold {
		return e.Contains(f.keyword)
	}
	return strings.Contains(strings.ToLower(e.Header()), f.keyword) ||
		strings.Contains(strings.ToLower(e.Stack()), f.keyword)
}

// Name returns the filter description.
func (f *KeywordFilter) Name() string {
	if f.fold {
		return "keyword(i):" + f.keyword
	}
	return "keyword:" + f.keyword
}
