package collection

import (
	"errors"
	"fmt"
	"math"

	"github.com/Geun-Oh/logview/internal/entry"
)

// Pagination argument errors.
var (
	ErrInvalidPerPage = errors.New("per-page must be at least 1")
	ErrInvalidPage    = errors.New("page must be at least 1")
)

// Page is one window of a collection plus the collection's total size.
type Page struct {
	Items       []entry.LogEntry `json:"items"`
	Total       int              `json:"total"`
	PerPage     int              `json:"per_page"`
	CurrentPage int              `json:"current_page"`
}

// LastPage returns the number of the last page, at least 1.
func (p Page) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasMorePages reports whether pages follow the current one.
func (p Page) HasMorePages() bool {
	return p.CurrentPage < p.LastPage()
}

// From returns the 1-based position of the first item, or 0 when empty.
func (p Page) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.CurrentPage-1)*p.PerPage + 1
}

// To returns the 1-based position of the last item, or 0 when empty.
func (p Page) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

// ForPage returns the entries of a 1-based page. Invalid arguments yield no
// entries; use Paginate to get them reported.
func (c *Collection) ForPage(page, perPage int) []entry.LogEntry {
	if page < 1 || perPage < 1 || page-1 > math.MaxInt/perPage {
		return []entry.LogEntry{}
	}
	return c.Slice((page-1)*perPage, perPage)
}

// Paginate evaluates the collection twice: once for the bounded window of
// the requested page and once in full for the total count. A page past the
// end has no items but a correct Total.
func (c *Collection) Paginate(perPage, page int) (Page, error) {
	if perPage < 1 {
		return Page{}, fmt.Errorf("paginate: %w, got %d", ErrInvalidPerPage, perPage)
	}
	if page < 1 {
		return Page{}, fmt.Errorf("paginate: %w, got %d", ErrInvalidPage, page)
	}

	return Page{
		Items:       c.ForPage(page, perPage),
		Total:       c.Count(),
		PerPage:     perPage,
		CurrentPage: page,
	}, nil
}
