// Package collection exposes raw log text as a lazy, re-iterable collection
// of log entries with filtering, statistics and pagination.
//
// A Collection stores no entries. It describes how to produce them: every
// operation re-parses the raw text from the top and pulls entries one at a
// time, so memory stays bounded by the largest single entry.
package collection

import (
	"iter"
	"slices"

	"github.com/Geun-Oh/logview/internal/buffer"
	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/filter"
	"github.com/Geun-Oh/logview/internal/monitor"
	"github.com/Geun-Oh/logview/internal/parser"
)

// Collection is an immutable, lazily evaluated sequence of log entries.
// Collections derived from the same raw text share nothing mutable and may
// be evaluated from different goroutines. The zero value is an empty
// collection using the default parser.
type Collection struct {
	raw     string
	parser  *parser.Parser
	metrics *monitor.ScanMetrics
	filters []filter.Filter
}

// Option configures a Collection.
type Option func(*Collection)

// WithParser sets the parser. Defaults to parser.Default().
func WithParser(p *parser.Parser) Option {
	return func(c *Collection) {
		c.parser = p
	}
}

// WithMetrics records scan metrics for every evaluation.
func WithMetrics(m *monitor.ScanMetrics) Option {
	return func(c *Collection) {
		c.metrics = m
	}
}

// Load wraps raw log text. Nothing is parsed until the collection is
// iterated. Empty input yields an empty collection.
func Load(raw string, opts ...Option) *Collection {
	c := &Collection{raw: raw}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Levels returns the level set recognized by the underlying parser.
func (c *Collection) Levels() entry.Levels {
	return c.parserOrDefault().Levels()
}

func (c *Collection) parserOrDefault() *parser.Parser {
	if c.parser == nil {
		return parser.Default()
	}
	return c.parser
}

// Filter returns a new collection yielding only entries accepted by f.
func (c *Collection) Filter(f filter.Filter) *Collection {
	derived := *c
	derived.filters = append(slices.Clip(c.filters), f)
	return &derived
}

// FilterByLevel returns a new collection yielding only entries whose level
// name equals level, ignoring case. An unknown name yields nothing.
func (c *Collection) FilterByLevel(level string) *Collection {
	return c.Filter(filter.NewLevelFilter(level))
}

// All returns the entries in source order. Each range over the result
// re-parses the raw text; stopping early releases the cursor.
func (c *Collection) All() iter.Seq[entry.LogEntry] {
	return func(yield func(entry.LogEntry) bool) {
		s := c.parserOrDefault().Parse(c.raw).WithMetrics(c.metrics)
		for e, ok := s.Next(); ok; e, ok = s.Next() {
			if !c.match(&e) {
				continue
			}
			c.metrics.RecordMatch()
			if !yield(e) {
				return
			}
		}
	}
}

func (c *Collection) match(e *entry.LogEntry) bool {
	for _, f := range c.filters {
		if !f.Match(e) {
			return false
		}
	}
	return true
}

// Count returns the number of entries with one full pass.
func (c *Collection) Count() int {
	n := 0
	for range c.All() {
		n++
	}
	return n
}

// IsEmpty reports whether the collection yields no entry. It stops at the
// first entry.
func (c *Collection) IsEmpty() bool {
	for range c.All() {
		return false
	}
	return true
}

// Entries materializes every entry. Prefer All, ForPage or Tail for large
// inputs.
func (c *Collection) Entries() []entry.LogEntry {
	return slices.Collect(c.All())
}

// Slice returns at most limit entries starting at offset, pulling no further
// than offset+limit entries from the source.
func (c *Collection) Slice(offset, limit int) []entry.LogEntry {
	items := make([]entry.LogEntry, 0, min(max(limit, 0), 128))
	if offset < 0 || limit <= 0 {
		return items
	}

	i := 0
	for e := range c.All() {
		if i >= offset {
			items = append(items, e)
			if len(items) == limit {
				break
			}
		}
		i++
	}
	return items
}

// Tail returns the last n entries, oldest first, holding at most n entries
// in memory. Entries evicted from the window are reported to the metrics
// as skipped.
func (c *Collection) Tail(n int) []entry.LogEntry {
	if n <= 0 {
		return []entry.LogEntry{}
	}
	ring := buffer.NewRing[entry.LogEntry](n)
	for e := range c.All() {
		ring.Push(e)
	}
	c.metrics.RecordSkipped(ring.Dropped())
	return ring.Snapshot()
}
