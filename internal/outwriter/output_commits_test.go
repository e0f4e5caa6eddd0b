package outwriter

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/schema"
)

func sampleCommits() []schema.Commit {
	return []schema.Commit{
		{
			Hash:      "aaaa1111bbbb2222",
			Author:    "Alice",
			Email:     "alice@example.com",
			Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			Message:   "Add parser",
			Files:     []string{"core/parser.go", "core/parser_test.go"},
		},
		{
			Hash:      "cccc3333dddd4444",
			Author:    "Bob",
			Email:     "bob@example.com",
			Timestamp: time.Date(2025, 3, 2, 11, 0, 0, 0, time.UTC),
			Message:   "Fix off-by-one",
			Files:     []string{"core/parser.go"},
		},
	}
}

func TestWriteCommitsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := tableConfig()

	require.NoError(t, writeCommitsTable(sampleCommits(), cfg, time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "aaaa1111") // short hash
	assert.NotContains(t, out, "aaaa1111bbbb2222")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "2025-03-01")
	assert.Contains(t, out, "Showing 2 commits")
}

func TestPrintCommitsCSVToFile(t *testing.T) {
	cfg := tableConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "commits.csv")

	require.NoError(t, PrintCommits(sampleCommits(), cfg, time.Second))
	assert.FileExists(t, cfg.OutputFile)
}

func TestPrintCommitsJSONToFile(t *testing.T) {
	cfg := tableConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "commits.json")

	require.NoError(t, PrintCommits(sampleCommits(), cfg, time.Second))
	assert.FileExists(t, cfg.OutputFile)
}

func TestPrintCommitsParquetRequiresOutputFile(t *testing.T) {
	cfg := tableConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = ""

	assert.Error(t, PrintCommits(sampleCommits(), cfg, time.Second))
}
