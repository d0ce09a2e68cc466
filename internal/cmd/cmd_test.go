package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/logview/internal/collection"
)

const sampleLog = `[2024-01-01 00:00:00] production.ERROR: SQLSTATE[HY000] Connection refused
#0 /var/www/vendor/db.php(10)
#1 {main}
[2024-01-01 00:00:01] production.INFO: request served
[2024-01-01 00:00:02] production.WARNING: slow query
[2024-01-01 00:00:03] production.ERROR: disk full
[2024-01-01 00:00:04] production.DEBUG: cache hit
`

type testEnv struct {
	dir     string
	logPath string
	cfgPath string
}

func newTestEnv(t *testing.T, cfg string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:     dir,
		logPath: filepath.Join(dir, "laravel.log"),
		cfgPath: filepath.Join(dir, "logview.yaml"),
	}
	require.NoError(t, os.WriteFile(env.logPath, []byte(sampleLog), 0o644))
	require.NoError(t, os.WriteFile(env.cfgPath, []byte("color: false\n"+cfg), 0o644))
	return env
}

// run executes the command tree and returns stdout and stderr.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCommand(strings.NewReader(stdin))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", e.cfgPath, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestEntriesText(t *testing.T) {
	env := newTestEnv(t, "")

	out, errOut, err := env.run(t, "", "entries", env.logPath, "--per-page", "2")
	require.NoError(t, err)

	assert.Equal(t, "[2024-01-01 00:00:00] production.ERROR: SQLSTATE[HY000] Connection refused\n"+
		"#0 /var/www/vendor/db.php(10)\n#1 {main}\n"+
		"[2024-01-01 00:00:01] production.INFO: request served\n", out)
	assert.Contains(t, errOut, "entries 1-2 of 5 (page 1/3)")
}

func TestEntriesJSONFromStdin(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, sampleLog, "entries", "-", "--level", "error", "--format", "json")
	require.NoError(t, err)

	var page struct {
		Total int                 `json:"total"`
		Data  []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "#0 /var/www/vendor/db.php(10)\n#1 {main}", page.Data[0]["stack"])
}

func TestEntriesPerPageFromConfig(t *testing.T) {
	env := newTestEnv(t, "per_page: 4\n")

	_, errOut, err := env.run(t, "", "entries", env.logPath, "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, errOut, "entries 5-5 of 5 (page 2/2)")
}

func TestEntriesInvalidPage(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.run(t, "", "entries", env.logPath, "--page", "0")
	assert.ErrorIs(t, err, collection.ErrInvalidPage)

	_, _, err = env.run(t, "", "entries", env.logPath, "--per-page", "0")
	assert.ErrorIs(t, err, collection.ErrInvalidPerPage)
}

func TestEntriesSearch(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "entries", env.logPath, "--search", "vendor", "--no-stack")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:00] production.ERROR: SQLSTATE[HY000] Connection refused\n", out)
}

func TestStatsJSONTranslated(t *testing.T) {
	env := newTestEnv(t, "display_names:\n  all: Everything\n")

	out, _, err := env.run(t, "", "stats", env.logPath, "--format", "json", "--translate")
	require.NoError(t, err)

	var tree []collection.TreeNode
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Len(t, tree, 10)
	assert.Equal(t, collection.TreeNode{Key: "all", Name: "Everything", Count: 5}, tree[0])
	assert.Equal(t, "unknown", tree[9].Key)

	counts := map[string]int{}
	for _, n := range tree {
		counts[n.Key] = n.Count
	}
	assert.Equal(t, 2, counts["error"])
	assert.Equal(t, 1, counts["debug"])
}

func TestStatsTable(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "stats", env.logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "warning")
}

func TestStatsBadFormat(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.run(t, "", "stats", env.logPath, "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestStreamFilters(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "stream", env.logPath, "--min-level", "warning", "--exclude", "disk", "--no-stack")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:00] production.ERROR: SQLSTATE[HY000] Connection refused\n"+
		"[2024-01-01 00:00:02] production.WARNING: slow query\n", out)
}

func TestStreamJSONToFileWithSummary(t *testing.T) {
	env := newTestEnv(t, "alerts:\n  - \"error:refused\"\n")
	dest := filepath.Join(env.dir, "errors.jsonl")

	out, errOut, err := env.run(t, "", "stream", env.logPath, "--level", "error", "--format", "json", "--output", dest, "--summary")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error:refused")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
}

func TestStreamTail(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "stream", env.logPath, "--tail", "1")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:04] production.DEBUG: cache hit\n", out)
}

func TestStreamTailSummary(t *testing.T) {
	env := newTestEnv(t, "")

	_, errOut, err := env.run(t, "", "stream", env.logPath, "--tail", "2", "--summary")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Outside tail:    3")
}

func TestStreamIgnoreCase(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "stream", env.logPath, "--keyword", "DISK", "--no-stack")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = env.run(t, "", "stream", env.logPath, "-i", "--keyword", "DISK", "--no-stack")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:03] production.ERROR: disk full\n", out)

	out, _, err = env.run(t, "", "stream", env.logPath, "-i", "--regex", "CACHE HIT$", "--exclude", "", "--no-stack")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:04] production.DEBUG: cache hit\n", out)
}

func TestStreamBadRegex(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.run(t, "", "stream", env.logPath, "--regex", "(")
	assert.Error(t, err)
}

func TestStreamExec(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run(t, "", "stream", "--exec", "cat "+env.logPath, "--level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-01 00:00:04] production.DEBUG: cache hit\n", out)
}

func TestSourceConflict(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.run(t, "", "stream", env.logPath, "--exec", "cat x")
	assert.ErrorContains(t, err, "exactly one")
}

func TestFiles(t *testing.T) {
	env := newTestEnv(t, "")
	logs := filepath.Join(env.dir, "storage", "logs")
	require.NoError(t, os.MkdirAll(logs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "laravel-2024-03-01.log"), []byte(sampleLog), 0o644))

	out, _, err := env.run(t, "", "files", env.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "laravel-2024-03-01.log")
	assert.Contains(t, out, "2024-03-01")
}

func TestFilesNoMatch(t *testing.T) {
	env := newTestEnv(t, "")

	out, errOut, err := env.run(t, "", "files", env.dir, "--pattern", "nothing/*.log")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no log files match")
}

func TestConfigDump(t *testing.T) {
	env := newTestEnv(t, "per_page: 33\n")

	out, _, err := env.run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "per_page: 33")
	assert.Contains(t, out, "color: false")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t, "leading: keep\n")

	_, _, err := env.run(t, "", "stats", env.logPath)
	assert.ErrorContains(t, err, "invalid config")
}

func TestViewWatchNeedsFile(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.run(t, sampleLog, "view", "-", "--watch")
	assert.ErrorContains(t, err, "--watch requires a file source")
}
