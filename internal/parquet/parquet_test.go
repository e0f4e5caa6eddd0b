package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/schema"
)

func TestWriteMiningRunsParquet(t *testing.T) {
	now := time.Now()
	endTime := now.Add(2 * time.Second)
	durationMs := endTime.Sub(now).Milliseconds()
	params := `{"dimension":"author","limit":25}`

	runs := []MiningRun{
		{
			RunID:         1,
			StartTime:     now,
			EndTime:       &endTime,
			RunDurationMs: &durationMs,
			Dimension:     "author",
			TotalCommits:  42,
			ConfigParams:  &params,
		},
		{
			RunID:        2,
			StartTime:    now,
			Dimension:    "file",
			TotalCommits: 0,
			// EndTime, RunDurationMs, ConfigParams nil for an in-flight run
		},
	}

	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteMiningRunsParquet(runs, outputPath))

	rows, err := parquet.ReadFile[MiningRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "author", rows[0].Dimension)
	assert.Equal(t, int32(42), rows[0].TotalCommits)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, params, *rows[0].ConfigParams)
	assert.Nil(t, rows[1].EndTime)
}

func TestWriteGroupCountsParquet(t *testing.T) {
	counts := []GroupCountRow{
		{RunID: 1, Dimension: "author", GroupKey: "alice@example.com", CommitCount: 30, Share: 60},
		{RunID: 1, Dimension: "author", GroupKey: "bob@example.com", CommitCount: 20, Share: 40},
	}

	outputPath := filepath.Join(t.TempDir(), "groups.parquet")
	require.NoError(t, WriteGroupCountsParquet(counts, outputPath))

	rows, err := parquet.ReadFile[GroupCountRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice@example.com", rows[0].GroupKey)
	assert.InDelta(t, 60.0, rows[0].Share, 0.001)
}

func TestWriteCommitsParquet(t *testing.T) {
	commits := ConvertCommits([]schema.Commit{
		{
			Hash:      "aaaa1111",
			Author:    "Alice",
			Email:     "alice@example.com",
			Timestamp: time.Now(),
			Message:   "Add parser",
			Files:     []string{"core/parser.go", "core/parser_test.go"},
		},
	})

	outputPath := filepath.Join(t.TempDir(), "commits.parquet")
	require.NoError(t, WriteCommitsParquet(commits, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	rows, err := parquet.ReadFile[CommitRow](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "aaaa1111", rows[0].Hash)
	assert.Equal(t, int32(2), rows[0].FileCount)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	records := []schema.RunRecord{
		{RunID: 7, StartTime: now, Dimension: "date", TotalCommits: 9, ConfigParams: `{"period":"week"}`},
		{RunID: 8, StartTime: now, Dimension: "author"},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(7), runs[0].RunID)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Nil(t, runs[1].ConfigParams) // empty params stay null
}
