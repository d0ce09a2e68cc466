package parser

import (
	"strings"
)

// Line is one line of raw text as seen by the Scanner.
type Line struct {
	Text   string
	Header bool   // starts a new entry
	Token  string // severity token captured from a header
}

// Scanner walks raw text line by line in a single forward pass and decides
// for each line whether it starts a new entry or continues the current one.
// Lines are split on "\n"; a trailing "\r" is dropped.
type Scanner struct {
	raw     string
	pos     int
	grammar *Grammar
}

// NewScanner creates a scanner over raw using the given header grammar.
func NewScanner(raw string, g *Grammar) *Scanner {
	return &Scanner{raw: raw, grammar: g}
}

// Scan returns the next line, or false at the end of input.
func (s *Scanner) Scan() (Line, bool) {
	if s.pos >= len(s.raw) {
		return Line{}, false
	}

	rest := s.raw[s.pos:]
	text := rest
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		text = rest[:i]
		s.pos += i + 1
	} else {
		s.pos = len(s.raw)
	}
	text = strings.TrimSuffix(text, "\r")

	// A blank line never opens an entry, whatever the grammar says.
	if strings.TrimSpace(text) == "" {
		return Line{Text: text}, true
	}

	token, ok := s.grammar.Match(text)
	return Line{Text: text, Header: ok, Token: token}, true
}

