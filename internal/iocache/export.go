package iocache

import (
	"errors"
	"fmt"

	"github.com/repominer/repominer/internal/parquet"
)

// ExecuteRunsExport exports the recorded runs and group counts to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get runs status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total group count records: %d\n", status.TableSizes[groupCountsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	groupCounts, err := store.GetAllGroupCounts()
	if err != nil {
		return fmt.Errorf("failed to retrieve group counts: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetGroups := parquet.ConvertGroupCountRecords(groupCounts)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteMiningRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write group counts to Parquet
	groupsFile := outputFile + ".group_counts.parquet"
	if err := parquet.WriteGroupCountsParquet(parquetGroups, groupsFile); err != nil {
		return fmt.Errorf("failed to write group counts: %w", err)
	}
	fmt.Printf("Exported %d group count records to: %s\n", len(parquetGroups), groupsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
