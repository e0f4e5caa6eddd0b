package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/parquet"
	"github.com/repominer/repominer/schema"
)

// PrintCommits outputs normalized commit records, dispatching based on the output format configured.
func PrintCommits(commits []schema.Commit, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCommitsJSONResults(commits, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCommitsCSVResults(commits, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeCommitsParquetResults(commits, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitsTable(commits, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCommitsJSONResults handles opening the file and calling the JSON writer.
func writeCommitsJSONResults(commits []schema.Commit, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, commits)
	}, "Wrote JSON")
}

// writeCommitsCSVResults handles opening the file and calling the CSV writer.
func writeCommitsCSVResults(commits []schema.Commit, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"hash", "author", "email", "timestamp", "message", "files"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, c := range commits {
				rec := []string{
					c.Hash,
					c.Author,
					c.Email,
					c.Timestamp.Format(contract.DateTimeFormat),
					c.Message,
					strings.Join(c.Files, "|"),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeCommitsParquetResults writes the commit records to a Parquet file.
func writeCommitsParquetResults(commits []schema.Commit, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	if err := parquet.WriteCommitsParquet(parquet.ConvertCommits(commits), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(writerForNotices(), "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeCommitsTable generates and writes the human-readable table.
func writeCommitsTable(commits []schema.Commit, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Hash", "Author", "Date", "Message", "Files"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableKeyWidth(cfg)
	var data [][]string
	for _, c := range commits {
		row := []string{
			schema.ShortHash(c.Hash),
			contract.TruncatePath(schema.DisplayAuthor(c.Author, c.Email), maxWidth),
			c.Timestamp.Format("2006-01-02"),
			contract.TruncatePath(c.Message, maxWidth),
			strconv.Itoa(len(c.Files)),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d commits\n", len(commits)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Mining completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
