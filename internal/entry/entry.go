// Package entry defines the core LogEntry type used throughout logview.
package entry

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LogEntry is one parsed log entry: a severity, a one-line header and an
// optional multi-line stack. It is immutable once built by New.
type LogEntry struct {
	level  Level
	header string
	stack  string
}

// New creates a LogEntry.
func New(level Level, header, stack string) LogEntry {
	return LogEntry{level: level, header: header, stack: stack}
}

// Level returns the classified severity.
func (e LogEntry) Level() Level { return e.level }

// Header returns the first line of the entry.
func (e LogEntry) Header() string { return e.header }

// Stack returns the continuation lines joined by "\n", or "".
func (e LogEntry) Stack() string { return e.stack }

// HasStack reports whether the entry carries continuation lines.
func (e LogEntry) HasStack() bool { return e.stack != "" }

// IsSameLevel compares candidate against the canonical level name,
// ignoring case.
func (e LogEntry) IsSameLevel(candidate string) bool {
	return strings.EqualFold(strings.TrimSpace(candidate), e.level.String())
}

// Contains reports whether s occurs in the header or the stack.
func (e LogEntry) Contains(s string) bool {
	return strings.Contains(e.header, s) || strings.Contains(e.stack, s)
}

// Format returns the entry as it appeared in the source text.
func (e LogEntry) Format() string {
	if e.stack == "" {
		return e.header
	}
	return e.header + "\n" + e.stack
}

type jsonEntry struct {
	Level  string `json:"level"`
	Header string `json:"header"`
	Stack  string `json:"stack,omitempty"`
}

// MarshalJSON encodes the entry as {"level","header","stack"}. Stack is
// omitted when empty. HTML characters are left unescaped.
func (e LogEntry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jsonEntry{Level: e.level.String(), Header: e.header, Stack: e.stack}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes the form written by MarshalJSON. An unrecognized
// level decodes as LevelUnknown.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var je jsonEntry
	if err := json.Unmarshal(data, &je); err != nil {
		return err
	}
	*e = New(ParseLevel(je.Level), je.Header, je.Stack)
	return nil
}
