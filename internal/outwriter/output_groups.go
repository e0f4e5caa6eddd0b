package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/parquet"
	"github.com/repominer/repominer/schema"
)

// PrintReport outputs a ranked mining report, dispatching based on the output format configured.
func PrintReport(report *schema.MiningReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSVResults(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeReportParquetResults(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportJSONResults handles opening the file and calling the JSON writer.
func writeReportJSONResults(report *schema.MiningReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForReport(w, report)
	}, "Wrote JSON")
}

// writeReportCSVResults handles opening the file and calling the CSV writer.
func writeReportCSVResults(report *schema.MiningReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "key", "commits", "share", "label", "dimension"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVRowsForReport(csvWriter, report, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// writeReportParquetResults writes the ranked groups to a Parquet file.
func writeReportParquetResults(report *schema.MiningReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}

	rows := make([]parquet.GroupCountRow, len(report.Groups))
	for i, g := range report.Groups {
		rows[i] = parquet.GroupCountRow{
			Dimension:   string(report.Dimension),
			GroupKey:    g.Key,
			CommitCount: int32(g.Commits),
			Share:       g.Share,
		}
	}
	if err := parquet.WriteGroupCountsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(writerForNotices(), "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(report *schema.MiningReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", keyHeader(report.Dimension), "Commits", "Share", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	var data [][]string
	for i, g := range report.Groups {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(g.Key, getMaxTableKeyWidth(cfg)), // Key
			fmt.Sprintf(intFmt, g.Commits),                         // Commits
			fmtFloat(g.Share) + "%",                                // Share
			label(g.Share),                                         // Label
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d of %d %s groups (total commits: %d)\n",
		len(report.Groups), report.TotalGroups, report.Dimension, report.TotalCommits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Window: %s to %s\n",
		report.Start.Format(contract.DateTimeFormat), report.End.Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Mining completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// keyHeader names the key column after the grouping dimension.
func keyHeader(dimension schema.GroupKey) string {
	switch dimension {
	case schema.AuthorKey:
		return "Author"
	case schema.DateKey:
		return "Period"
	case schema.FileKey:
		return "File"
	default:
		return "Key"
	}
}

// writeCSVRowsForReport writes the ranked groups in CSV format.
func writeCSVRowsForReport(w *csv.Writer, report *schema.MiningReport, fmtFloat func(float64) string, intFmt string) error {
	for i, g := range report.Groups {
		rec := []string{
			strconv.Itoa(i + 1),            // Rank
			g.Key,                          // Group key
			fmt.Sprintf(intFmt, g.Commits), // Commits
			fmtFloat(g.Share),              // Share
			contract.GetPlainLabel(g.Share),
			string(report.Dimension),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForReport writes the report in JSON format.
func writeJSONResultsForReport(w io.Writer, report *schema.MiningReport) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONGroupCount struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.GroupCount
	}

	groups := make([]JSONGroupCount, len(report.Groups))
	for i, g := range report.Groups {
		groups[i] = JSONGroupCount{
			Rank:       i + 1,
			Label:      contract.GetPlainLabel(g.Share),
			GroupCount: g,
		}
	}

	output := struct {
		Dimension    schema.GroupKey  `json:"dimension"`
		TotalCommits int              `json:"total_commits"`
		TotalGroups  int              `json:"total_groups"`
		Start        time.Time        `json:"start"`
		End          time.Time        `json:"end"`
		Groups       []JSONGroupCount `json:"groups"`
	}{
		Dimension:    report.Dimension,
		TotalCommits: report.TotalCommits,
		TotalGroups:  report.TotalGroups,
		Start:        report.Start,
		End:          report.End,
		Groups:       groups,
	}

	return writeJSON(w, output)
}
