package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/lcovmerge/internal/logger"
	"github.com/zjy-dev/lcovmerge/internal/merge"
)

// execute runs the command in an empty working directory and returns
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { _ = logger.Init("info", os.Stderr, true) })

	var stdout, stderr bytes.Buffer
	cmd := NewLcovmergeCommand("1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoot_Merge(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nFN:1,f\nFNDA:1,f\nDA:1,5\nDA:2,0\nend_of_record\n")
	b := writeFile(t, dir, "b.info", "SF:x.c\nFN:1,f\nFNDA:3,f\nDA:1,2\nDA:3,4\nend_of_record\n")
	out := filepath.Join(dir, "coverage", "merged.info")

	stdout, stderr, err := execute(t, "--no-color", "-o", out, a, b)
	require.NoError(t, err)

	assert.Contains(t, stderr, "[INFO] Merging 2 coverage files...")
	assert.Contains(t, stderr, "[INFO] Processing: "+a)
	assert.Contains(t, stdout, "Merged coverage summary:")
	assert.Contains(t, stdout, "2/3 (66.67%)")
	assert.Contains(t, stdout, out)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `TN:
SF:x.c
FN:1,f
FNDA:3,f
FNF:1
FNH:1
BRF:0
BRH:0
DA:1,5
DA:2,0
DA:3,4
LF:3
LH:2
end_of_record
`, string(content))
}

func TestRoot_MissingFileStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\n")
	missing := filepath.Join(dir, "nope.info")

	_, stderr, err := execute(t, "--no-color", "--output", "merged.info", a, missing)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[WARN] File not found: "+missing)
	assert.FileExists(t, filepath.Join(dir, "merged.info"))
}

func TestRoot_AllInputsMissing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := execute(t, "-o", "merged.info", "a.info", "b.info")
	require.Error(t, err)
	assert.True(t, errors.Is(err, merge.ErrNoCoverage))
	assert.NoFileExists(t, filepath.Join(dir, "merged.info"))
}

func TestRoot_EmptySourceFileOnly(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:\n")

	_, _, err := execute(t, "-o", "merged.info", a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merge.ErrNoCoverage))
	assert.NoFileExists(t, filepath.Join(dir, "merged.info"))
}

func TestRoot_RequiresFiles(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, "-o", "merged.info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestRoot_RequiresOutput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\n")

	_, _, err := execute(t, a)
	assert.True(t, errors.Is(err, merge.ErrNoOutput))
}

func TestRoot_OutputFlagHelp(t *testing.T) {
	cmd := NewLcovmergeCommand("1.2.3")
	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Contains(t, flag.Usage, "required unless set in the config file")
}

func TestRoot_OutputFromConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, "configs/lcovmerge.yaml", "output: build/merged.info\nlog_level: error\n")
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\n")

	_, stderr, err := execute(t, a)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "build", "merged.info"))
	assert.NotContains(t, stderr, "Processing:", "info messages are filtered at error level")
}

func TestRoot_FlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := writeFile(t, dir, "ci.yaml", "output: from-config.info\n")
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\n")

	_, _, err := execute(t, "--config", cfg, "-o", "from-flag.info", a)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-flag.info"))
	assert.NoFileExists(t, filepath.Join(dir, "from-config.info"))
}

func TestRoot_BadConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), "-o", "m.info", "a.info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, "--log-level", "loud", "-o", "m.info", "a.info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

func TestRoot_Markdown(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nDA:2,0\nend_of_record\n")

	_, _, err := execute(t, "-o", "merged.info", "--markdown", "reports/coverage.md", a)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "reports", "coverage.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "| Lines | 1 | 2 | 50.00% |")
}

func TestSummary_Table(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\nSF:y.c\nDA:1,0\nend_of_record\n")

	stdout, _, err := execute(t, "summary", a)
	require.NoError(t, err)

	assert.Contains(t, stdout, "FILE")
	assert.Contains(t, stdout, "x.c")
	assert.Contains(t, stdout, "y.c")
	assert.Contains(t, stdout, "1/2 (50.00%)")
	assert.NotContains(t, stdout, "Output:")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "summary writes nothing")
}

func TestSummary_JSON(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	a := writeFile(t, dir, "a.info", "SF:x.c\nDA:1,1\nend_of_record\n")

	stdout, _, err := execute(t, "summary", "--format", "JSON", a)
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			Files int `json:"files"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 1, doc.Summary.Files)
}

func TestSummary_UnsupportedFormat(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, "summary", "--format", "xml", "a.info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestSummary_NoData(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := execute(t, "summary", "missing.info")
	assert.True(t, errors.Is(err, merge.ErrNoCoverage))
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lcovmerge version 1.2.3", strings.TrimSpace(stdout))
}
