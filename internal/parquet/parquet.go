// Package parquet provides data structures and functions for exporting
// mining data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/repominer/repominer/schema"
)

// MiningRun represents a single mining run with metadata.
// This struct maps to the miner_runs database table.
type MiningRun struct {
	// RunID is the unique identifier for this mining run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// Dimension is the grouping dimension used for the run
	Dimension string `parquet:"dimension,snappy"`

	// TotalCommits is the number of commits processed in this run
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// GroupCountRow represents one persisted group count tied to a run.
// This struct maps to the miner_group_counts database table.
type GroupCountRow struct {
	// RunID references the parent mining run
	RunID int64 `parquet:"run_id,snappy"`

	// Dimension is the grouping dimension of this count
	Dimension string `parquet:"dimension,snappy"`

	// GroupKey is the group identifier (author, date bucket, or file path)
	GroupKey string `parquet:"group_key,snappy"`

	// CommitCount is the number of commits attributed to the group
	CommitCount int32 `parquet:"commit_count,snappy"`

	// Share is the group's percentage of the commit total (0-100)
	Share float64 `parquet:"share,snappy"`
}

// CommitRow represents one normalized commit for the parquet output mode.
type CommitRow struct {
	Hash      string    `parquet:"hash,snappy"`
	Author    string    `parquet:"author,snappy"`
	Email     string    `parquet:"email,snappy"`
	Timestamp time.Time `parquet:"timestamp,snappy"`
	Message   string    `parquet:"message,snappy"`
	FileCount int32     `parquet:"file_count,snappy"`
}

// writeParquet writes rows to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteMiningRunsParquet writes a slice of MiningRun structs to a Parquet file.
func WriteMiningRunsParquet(data []MiningRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGroupCountsParquet writes a slice of GroupCountRow structs to a Parquet file.
func WriteGroupCountsParquet(data []GroupCountRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCommitsParquet writes a slice of CommitRow structs to a Parquet file.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to MiningRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []MiningRun {
	result := make([]MiningRun, len(records))
	for i, record := range records {
		run := MiningRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.DurationMs,
			Dimension:     record.Dimension,
			TotalCommits:  int32(record.TotalCommits),
		}
		if record.ConfigParams != "" {
			params := record.ConfigParams
			run.ConfigParams = &params
		}
		result[i] = run
	}
	return result
}

// ConvertGroupCountRecords converts schema.GroupCountRecord to GroupCountRow for Parquet export.
func ConvertGroupCountRecords(records []schema.GroupCountRecord) []GroupCountRow {
	result := make([]GroupCountRow, len(records))
	for i, record := range records {
		result[i] = GroupCountRow{
			RunID:       record.RunID,
			Dimension:   record.Dimension,
			GroupKey:    record.GroupKey,
			CommitCount: int32(record.Commits),
			Share:       record.Share,
		}
	}
	return result
}

// ConvertCommits converts schema.Commit to CommitRow for Parquet export.
func ConvertCommits(commits []schema.Commit) []CommitRow {
	result := make([]CommitRow, len(commits))
	for i, c := range commits {
		result[i] = CommitRow{
			Hash:      c.Hash,
			Author:    c.Author,
			Email:     c.Email,
			Timestamp: c.Timestamp,
			Message:   c.Message,
			FileCount: int32(len(c.Files)),
		}
	}
	return result
}
