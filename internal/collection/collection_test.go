package collection

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/filter"
	"github.com/Geun-Oh/logview/internal/monitor"
	"github.com/Geun-Oh/logview/internal/parser"
)

const sample = `[2024-01-01 00:00:00] app.ERROR: boom
#0 trace line one
#1 trace line two
[2024-01-01 00:00:01] app.INFO: all good
`

// genLog builds n entries cycling through levels; every third entry has a stack.
func genLog(n int, levels ...string) string {
	if len(levels) == 0 {
		levels = []string{"ERROR", "INFO", "DEBUG", "WARNING"}
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "[2024-01-01 00:00:00] app.%s: entry %d\n", levels[i%len(levels)], i)
		if i%3 == 0 {
			sb.WriteString("#0 /app/Foo.php(10): bar()\n#1 {main}\n")
		}
	}
	return sb.String()
}

func TestLoadScenario(t *testing.T) {
	entries := Load(sample).Entries()

	require.Len(t, entries, 2)
	assert.Equal(t, entry.New(entry.LevelError, "[2024-01-01 00:00:00] app.ERROR: boom", "#0 trace line one\n#1 trace line two"), entries[0])
	assert.Equal(t, entry.New(entry.LevelInfo, "[2024-01-01 00:00:01] app.INFO: all good", ""), entries[1])
}

func TestEmptyInput(t *testing.T) {
	c := Load("")

	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Count())
	assert.Empty(t, c.Entries())
	assert.Equal(t, 0, c.Stats().Total())
}

func TestReiterationIsIdempotent(t *testing.T) {
	c := Load(genLog(25))

	assert.Equal(t, c.Entries(), c.Entries())
	assert.Equal(t, 25, c.Count())
	assert.Equal(t, 25, c.Count())
}

func TestZeroValueCollection(t *testing.T) {
	var c Collection

	assert.True(t, c.IsEmpty())
	assert.Equal(t, entry.AllLevels(), c.Levels().List())
	assert.Equal(t, 0, c.Stats().Total())

	p, err := c.Paginate(10, 1)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Zero(t, p.Total)
}

func TestFilterByLevel(t *testing.T) {
	c := Load(genLog(40))
	errs := c.FilterByLevel("ERROR")

	got := errs.Entries()
	require.Len(t, got, 10)
	for _, e := range got {
		assert.True(t, e.IsSameLevel("error"))
	}

	rest := c.Filter(filter.Not(filter.NewLevelFilter("error")))
	assert.Equal(t, c.Count(), errs.Count()+rest.Count())
}

func TestFilterByLevelPreservesOrder(t *testing.T) {
	got := Load(genLog(12)).FilterByLevel("info").Entries()

	require.Len(t, got, 3)
	for i, n := range []int{1, 5, 9} {
		assert.True(t, strings.HasSuffix(got[i].Header(), fmt.Sprintf("entry %d", n)))
	}
}

func TestFilterByUnknownLevelNameIsEmpty(t *testing.T) {
	c := Load(genLog(10)).FilterByLevel("fatal")
	assert.True(t, c.IsEmpty())
}

func TestFilterDoesNotMutateParent(t *testing.T) {
	c := Load(genLog(8))
	a := c.FilterByLevel("error")
	b := c.FilterByLevel("info")

	assert.Equal(t, 8, c.Count())
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, 2, b.Count())

	ab := a.Filter(filter.NewKeywordFilter("entry 4"))
	assert.Equal(t, 1, ab.Count())
	assert.Equal(t, 2, a.Count())
}

func TestTailReportsEvicted(t *testing.T) {
	m := monitor.NewScanMetrics()
	c := Load(genLog(10), WithMetrics(m)).FilterByLevel("error")

	got := c.Tail(1)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsSameLevel("error"))
	assert.Equal(t, uint64(c.Count()-1), m.Skipped())
}

func TestSliceAndTail(t *testing.T) {
	c := Load(genLog(10))

	got := c.Slice(2, 3)
	require.Len(t, got, 3)
	assert.True(t, strings.HasSuffix(got[0].Header(), "entry 2"))

	tail := c.Tail(3)
	require.Len(t, tail, 3)
	assert.True(t, strings.HasSuffix(tail[0].Header(), "entry 7"))
	assert.True(t, strings.HasSuffix(tail[2].Header(), "entry 9"))

	assert.Len(t, c.Tail(50), 10)
	assert.Empty(t, c.Tail(0))
	assert.Empty(t, c.Slice(-1, 3))
	assert.Empty(t, c.Slice(0, 0))
}

func TestSliceStopsPulling(t *testing.T) {
	m := monitor.NewScanMetrics()
	c := Load(genLog(1000), WithMetrics(m))

	c.Slice(0, 5)
	assert.LessOrEqual(t, m.Entries(), uint64(6))
}

func TestConcurrentEvaluation(t *testing.T) {
	c := Load(genLog(200))
	want := map[string]int{"error": 50, "info": 50, "debug": 50, "warning": 50}

	var wg sync.WaitGroup
	for level, n := range want {
		wg.Add(1)
		go func(level string, n int) {
			defer wg.Done()
			assert.Equal(t, n, c.FilterByLevel(level).Count())
		}(level, n)
	}
	wg.Wait()
}

func TestWithParser(t *testing.T) {
	p, err := parser.New(parser.Options{Leading: parser.LeadingDiscard})
	require.NoError(t, err)

	c := Load("leftover\n"+sample, WithParser(p))
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 3, Load("leftover\n"+sample).Count())
}
