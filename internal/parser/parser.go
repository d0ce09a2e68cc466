package parser

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/monitor"
)

// LeadingPolicy decides what happens to text that precedes the first
// recognized header, as found in truncated or rotated log files.
type LeadingPolicy int

const (
	// LeadingSynthesize turns leading text into one entry of unknown level:
	// the first non-blank line is its header, the rest its stack.
	LeadingSynthesize LeadingPolicy = iota
	// LeadingDiscard drops leading text.
	LeadingDiscard
)

// String returns the configuration name of the policy.
func (p LeadingPolicy) String() string {
	if p == LeadingDiscard {
		return "discard"
	}
	return "synthesize"
}

// ParseLeadingPolicy converts "synthesize" or "discard" to a policy.
// An empty string selects LeadingSynthesize.
func ParseLeadingPolicy(s string) (LeadingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "synthesize":
		return LeadingSynthesize, nil
	case "discard":
		return LeadingDiscard, nil
	default:
		return 0, fmt.Errorf("unknown leading policy %q (want synthesize or discard)", s)
	}
}

// Options configures a Parser.
type Options struct {
	// Pattern is the Grok-style header grammar. Empty selects DefaultPattern.
	Pattern string
	// Levels is the recognized level set. Zero value recognizes all levels.
	Levels entry.Levels
	// Leading is the policy for text before the first header.
	Leading LeadingPolicy
}

// Parser turns raw log text into a lazy sequence of entries. A Parser is
// immutable and safe for concurrent use; every Parse call owns its cursor.
type Parser struct {
	grammar    *Grammar
	classifier Classifier
	levels     entry.Levels
	leading    LeadingPolicy
}

// New compiles the header grammar and returns a Parser.
func New(opts Options) (*Parser, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := CompileGrammar(pattern)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	levels := opts.Levels
	if levels.IsZero() {
		levels = entry.DefaultLevels()
	}

	return &Parser{
		grammar:    g,
		classifier: NewClassifier(levels),
		levels:     levels,
		leading:    opts.Leading,
	}, nil
}

var defaultParser = sync.OnceValue(func() *Parser {
	p, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return p
})

// Default returns a Parser using DefaultPattern and all levels.
func Default() *Parser {
	return defaultParser()
}

// Parse starts a stream over raw using the default parser.
func Parse(raw string) *Stream {
	return Default().Parse(raw)
}

// Levels returns the recognized level set.
func (p *Parser) Levels() entry.Levels {
	return p.levels
}

// Grammar returns the compiled header grammar.
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// Leading returns the leading-text policy.
func (p *Parser) Leading() LeadingPolicy {
	return p.leading
}

// Parse returns a new stream positioned at the start of raw. Nothing is
// scanned until the first call to Next.
func (p *Parser) Parse(raw string) *Stream {
	return &Stream{
		parser:  p,
		scanner: NewScanner(raw, p.grammar),
	}
}

// All returns raw's entries as a range-over-func sequence. Each iteration
// re-scans raw from the start.
func (p *Parser) All(raw string) iter.Seq[entry.LogEntry] {
	return func(yield func(entry.LogEntry) bool) {
		s := p.Parse(raw)
		for e, ok := s.Next(); ok; e, ok = s.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

func (p *Parser) classify(l Line) entry.Level {
	if p.grammar.HasLevelField() {
		return p.classifier.Classify(l.Token)
	}
	return p.classifier.Detect(l.Text)
}

// Stream is a pull-based iterator over the entries of one raw text. Each
// Next call consumes exactly the lines of one entry plus, at most, the
// header line of the following one. A Stream is not safe for concurrent use.
type Stream struct {
	parser  *Parser
	scanner *Scanner
	metrics *monitor.ScanMetrics
	pending *Line
	started bool
}

// WithMetrics attaches a metrics collector and returns s.
func (s *Stream) WithMetrics(m *monitor.ScanMetrics) *Stream {
	s.metrics = m
	return s
}

// Next returns the next entry, or false when the input is exhausted.
func (s *Stream) Next() (entry.LogEntry, bool) {
	if !s.started {
		s.started = true
		if e, ok := s.readLeading(); ok {
			return e, true
		}
	}

	if s.pending == nil {
		return entry.LogEntry{}, false
	}
	head := *s.pending
	s.pending = nil

	var body bodyBuilder
	s.readUntilHeader(body.add)

	return s.emit(entry.New(s.parser.classify(head), head.Text, body.String())), true
}

// Buffered returns the number of entries the stream holds besides the one
// last returned: 1 while a look-ahead header is pending, else 0.
func (s *Stream) Buffered() int {
	if s.pending != nil {
		return 1
	}
	return 0
}

func (s *Stream) readLeading() (entry.LogEntry, bool) {
	var head string
	var body bodyBuilder
	s.readUntilHeader(func(text string) {
		switch {
		case s.parser.leading == LeadingDiscard:
		case head == "":
			if strings.TrimSpace(text) != "" {
				head = text
			}
		default:
			body.add(text)
		}
	})

	if head == "" {
		return entry.LogEntry{}, false
	}
	return s.emit(entry.New(entry.LevelUnknown, head, body.String())), true
}

// readUntilHeader feeds continuation lines to fn until a header is found,
// which is kept as pending, or the input ends.
func (s *Stream) readUntilHeader(fn func(text string)) {
	for {
		line, ok := s.scanner.Scan()
		if !ok {
			return
		}
		s.metrics.RecordLine()
		if line.Header {
			s.pending = &line
			return
		}
		fn(line.Text)
	}
}

func (s *Stream) emit(e entry.LogEntry) entry.LogEntry {
	s.metrics.RecordEntry()
	s.metrics.ObserveBuffered(1 + s.Buffered())
	return e
}

// bodyBuilder joins continuation lines, dropping blank lines at either end.
type bodyBuilder struct {
	sb     strings.Builder
	blanks []string
}

func (b *bodyBuilder) add(line string) {
	if strings.TrimSpace(line) == "" {
		if b.sb.Len() > 0 {
			b.blanks = append(b.blanks, line)
		}
		return
	}
	for _, blank := range b.blanks {
		b.sb.WriteByte('\n')
		b.sb.WriteString(blank)
	}
	b.blanks = b.blanks[:0]
	if b.sb.Len() > 0 {
		b.sb.WriteByte('\n')
	}
	b.sb.WriteString(line)
}

func (b *bodyBuilder) String() string {
	return b.sb.String()
}
