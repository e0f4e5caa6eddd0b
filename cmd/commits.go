package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repominer/repominer/core"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/iocache"
)

// commitsCmd lists normalized commit records.
var commitsCmd = &cobra.Command{
	Use:   "commits [repo-path]",
	Short: "List normalized commit records from Git history.",
	Long: `Read Git history and print one normalized record per commit.

Each record carries the commit hash, author name and email, timestamp,
subject line and the list of files touched. Path filters and excludes
trim the file lists without dropping the commits themselves.

Examples:
  # List the last six months of commits
  repominer commits

  # Cap history reads and skip merge commits
  repominer commits --max 500 --skip-merges

  # Export records for downstream analysis
  repominer commits --output parquet --output-file commits.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCommits(rootCtx, cfg, gitClient, iocache.Manager); err != nil {
			contract.LogFatal("Cannot list commits", err)
		}
	},
}
