package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

func sampleReport() *schema.MiningReport {
	return &schema.MiningReport{
		Dimension: schema.AuthorKey,
		Groups: []schema.GroupCount{
			{Key: "alice@example.com", Commits: 30, Share: 60},
			{Key: "bob@example.com", Commits: 20, Share: 40},
		},
		TotalCommits: 50,
		TotalGroups:  2,
		Start:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func tableConfig() *contract.Config {
	return &contract.Config{
		Precision:    1,
		Width:        120,
		Output:       schema.TextOut,
		CacheBackend: schema.SQLiteBackend,
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := tableConfig()
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	err := writeReportTable(sampleReport(), cfg, fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "60.0%")
	assert.Contains(t, out, "Author")
	assert.Contains(t, out, "total commits: 50")
}

func TestWriteReportTableColorLabels(t *testing.T) {
	var buf bytes.Buffer
	cfg := tableConfig()
	cfg.UseColors = false
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	require.NoError(t, writeReportTable(sampleReport(), cfg, fmtFloat, intFmt, time.Second, &buf))
	assert.Contains(t, buf.String(), contract.HighValue)
}

func TestWriteCSVRowsForReport(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, intFmt := createFormatters(2)

	require.NoError(t, writeCSVRowsForReport(w, sampleReport(), fmtFloat, intFmt))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "alice@example.com", "30", "60.00", "High", "author"}, records[0])
}

func TestWriteJSONResultsForReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONResultsForReport(&buf, sampleReport()))

	var decoded struct {
		Dimension    string `json:"dimension"`
		TotalCommits int    `json:"total_commits"`
		Groups       []struct {
			Rank    int    `json:"rank"`
			Label   string `json:"label"`
			Key     string `json:"key"`
			Commits int    `json:"commits"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "author", decoded.Dimension)
	assert.Equal(t, 50, decoded.TotalCommits)
	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, 1, decoded.Groups[0].Rank)
	assert.Equal(t, "High", decoded.Groups[0].Label)
}

func TestPrintReportParquet(t *testing.T) {
	cfg := tableConfig()
	cfg.Output = schema.ParquetOut

	t.Run("requires output file", func(t *testing.T) {
		cfg := *cfg
		cfg.OutputFile = ""
		assert.Error(t, PrintReport(sampleReport(), &cfg, time.Second))
	})

	t.Run("writes file", func(t *testing.T) {
		cfg := *cfg
		cfg.OutputFile = filepath.Join(t.TempDir(), "report.parquet")
		require.NoError(t, PrintReport(sampleReport(), &cfg, time.Second))
	})
}

func TestKeyHeader(t *testing.T) {
	assert.Equal(t, "Author", keyHeader(schema.AuthorKey))
	assert.Equal(t, "Period", keyHeader(schema.DateKey))
	assert.Equal(t, "File", keyHeader(schema.FileKey))
	assert.Equal(t, "Key", keyHeader(schema.GroupKey("other")))
}

func TestGetMaxTableKeyWidth(t *testing.T) {
	narrow := &contract.Config{Width: 50}
	assert.Equal(t, 15, getMaxTableKeyWidth(narrow))

	wide := &contract.Config{Width: 300}
	assert.Equal(t, 70, getMaxTableKeyWidth(wide))

	middling := &contract.Config{Width: 100}
	assert.Equal(t, 55, getMaxTableKeyWidth(middling))
}
