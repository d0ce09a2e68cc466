package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/monitor"
)

const sample = `[2024-01-01 00:00:00] app.ERROR: boom
#0 trace line one
#1 trace line two
[2024-01-01 00:00:01] app.INFO: all good
`

func collect(s *Stream) []entry.LogEntry {
	var out []entry.LogEntry
	for e, ok := s.Next(); ok; e, ok = s.Next() {
		out = append(out, e)
	}
	return out
}

func TestParseScenario(t *testing.T) {
	entries := collect(Parse(sample))

	require.Len(t, entries, 2)
	assert.Equal(t, entry.LevelError, entries[0].Level())
	assert.Equal(t, "[2024-01-01 00:00:00] app.ERROR: boom", entries[0].Header())
	assert.Equal(t, "#0 trace line one\n#1 trace line two", entries[0].Stack())
	assert.Equal(t, entry.LevelInfo, entries[1].Level())
	assert.Equal(t, "[2024-01-01 00:00:01] app.INFO: all good", entries[1].Header())
	assert.Equal(t, "", entries[1].Stack())
}

func TestParsePreservesSourceOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "[2024-01-01 00:00:%02d] app.DEBUG: message %d\n", i%60, i)
	}

	entries := collect(Parse(sb.String()))
	require.Len(t, entries, 100)
	for i, e := range entries {
		assert.True(t, strings.HasSuffix(e.Header(), fmt.Sprintf("message %d", i)))
	}
}

func TestParseHeaderLookalikeStaysInBody(t *testing.T) {
	raw := "[2024-01-01 00:00:00] app.ERROR: outer\n" +
		"Next exception: [2024-01-01 00:00:00] app.ERROR: inner\n" +
		"[stacktrace]\n" +
		"  [2024-01-01 00:00:00] app.CRITICAL: indented\n"

	entries := collect(Parse(raw))
	require.Len(t, entries, 1)
	assert.Equal(t, "Next exception: [2024-01-01 00:00:00] app.ERROR: inner\n"+
		"[stacktrace]\n"+
		"  [2024-01-01 00:00:00] app.CRITICAL: indented", entries[0].Stack())
}

func TestParseIsRestartable(t *testing.T) {
	first := collect(Parse(sample))
	second := collect(Parse(sample))
	assert.Equal(t, first, second)
}

func TestParseIndependentStreams(t *testing.T) {
	a := Parse(sample)
	b := Parse(sample)

	ea, _ := a.Next()
	eb, _ := b.Next()
	assert.Equal(t, ea, eb)

	ea2, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, entry.LevelInfo, ea2.Level())

	eb2, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, ea2, eb2)
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n", "  \n\t\n"} {
		assert.Empty(t, collect(Parse(raw)), "input %q", raw)
	}
}

func TestParseUnknownLevelToken(t *testing.T) {
	entries := collect(Parse("[2024-01-01 00:00:00] app.FATAL: not a level we know\nbody"))

	require.Len(t, entries, 1)
	assert.Equal(t, entry.LevelUnknown, entries[0].Level())
	assert.Equal(t, "body", entries[0].Stack())
}

func TestParseAllLevels(t *testing.T) {
	var sb strings.Builder
	for _, l := range entry.AllLevels() {
		fmt.Fprintf(&sb, "[2024-01-01 00:00:00] prod.%s: x\n", strings.ToUpper(l.String()))
	}

	entries := collect(Parse(sb.String()))
	require.Len(t, entries, 8)
	for i, l := range entry.AllLevels() {
		assert.Equal(t, l, entries[i].Level())
	}
}

func TestParseCRLF(t *testing.T) {
	raw := strings.ReplaceAll(sample, "\n", "\r\n")
	assert.Equal(t, collect(Parse(sample)), collect(Parse(raw)))
}

func TestParseTrimsBlankBodyEdges(t *testing.T) {
	raw := "[2024-01-01 00:00:00] app.ERROR: boom\n\n#0 one\n\n   \n#1 two\n\n\n"

	entries := collect(Parse(raw))
	require.Len(t, entries, 1)
	assert.Equal(t, "#0 one\n\n   \n#1 two", entries[0].Stack())
}

func TestLeadingTextSynthesized(t *testing.T) {
	raw := "\n...truncated line\n#12 {main}\n" + sample

	entries := collect(Parse(raw))
	require.Len(t, entries, 3)
	assert.Equal(t, entry.LevelUnknown, entries[0].Level())
	assert.Equal(t, "...truncated line", entries[0].Header())
	assert.Equal(t, "#12 {main}", entries[0].Stack())
	assert.Equal(t, entry.LevelError, entries[1].Level())
}

func TestLeadingTextDiscarded(t *testing.T) {
	p, err := New(Options{Leading: LeadingDiscard})
	require.NoError(t, err)

	entries := collect(p.Parse("...truncated line\n#12 {main}\n" + sample))
	require.Len(t, entries, 2)
	assert.Equal(t, entry.LevelError, entries[0].Level())
}

func TestNoHeaderAtAll(t *testing.T) {
	entries := collect(Parse("just some text\nmore text"))
	require.Len(t, entries, 1)
	assert.Equal(t, entry.LevelUnknown, entries[0].Level())
	assert.Equal(t, "just some text", entries[0].Header())
	assert.Equal(t, "more text", entries[0].Stack())

	p, err := New(Options{Leading: LeadingDiscard})
	require.NoError(t, err)
	assert.Empty(t, collect(p.Parse("just some text\nmore text")))
}

func TestParseLeadingPolicy(t *testing.T) {
	for input, want := range map[string]LeadingPolicy{
		"":           LeadingSynthesize,
		"synthesize": LeadingSynthesize,
		"DISCARD":    LeadingDiscard,
	} {
		got, err := ParseLeadingPolicy(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want.String(), got.String())
	}

	_, err := ParseLeadingPolicy("keep")
	assert.Error(t, err)
}

func TestParserAccessors(t *testing.T) {
	p := Default()
	assert.Equal(t, DefaultPattern, p.Grammar().Pattern())
	assert.Equal(t, LeadingSynthesize, p.Leading())

	p, err := New(Options{Pattern: `^%{TIMESTAMP} `, Leading: LeadingDiscard})
	require.NoError(t, err)
	assert.Equal(t, `^%{TIMESTAMP} `, p.Grammar().Pattern())
	assert.False(t, p.Grammar().HasLevelField())
	assert.Equal(t, "discard", p.Leading().String())
}

func TestCustomPatternWithoutLevelField(t *testing.T) {
	p, err := New(Options{Pattern: `^%{TIMESTAMP} `})
	require.NoError(t, err)

	entries := collect(p.Parse("2024-01-01 10:00:00 [warn] disk 91%\n  detail\n2024-01-01 10:00:01 started\n"))
	require.Len(t, entries, 2)
	assert.Equal(t, entry.LevelWarning, entries[0].Level())
	assert.Equal(t, "  detail", entries[0].Stack())
	assert.Equal(t, entry.LevelUnknown, entries[1].Level())
}

func TestRestrictedLevelSet(t *testing.T) {
	levels, err := entry.NewLevels([]string{"error", "info"}, nil)
	require.NoError(t, err)
	p, err := New(Options{Levels: levels})
	require.NoError(t, err)

	entries := collect(p.Parse("[2024-01-01 00:00:00] app.DEBUG: hidden\n[2024-01-01 00:00:00] app.ERROR: shown\n"))
	require.Len(t, entries, 2)
	assert.Equal(t, entry.LevelUnknown, entries[0].Level())
	assert.Equal(t, entry.LevelError, entries[1].Level())
	assert.Equal(t, levels, p.Levels())
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(Options{Pattern: `%{MISSING:level}`})
	assert.ErrorContains(t, err, "parser:")
}

func TestAllStopsEarly(t *testing.T) {
	var seen int
	for range Default().All(sample) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestStreamBufferedIsBounded(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "[2024-01-01 00:00:00] app.ERROR: e%d\n#0 frame\n#1 frame\n", i)
	}

	m := monitor.NewScanMetrics()
	s := Parse(sb.String()).WithMetrics(m)
	for _, ok := s.Next(); ok; _, ok = s.Next() {
		assert.LessOrEqual(t, s.Buffered(), 1)
	}

	assert.Equal(t, uint64(1000), m.Entries())
	assert.Equal(t, uint64(3000), m.Lines())
	assert.Equal(t, 2, m.PeakBuffered())
}
