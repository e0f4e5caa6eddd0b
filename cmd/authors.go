package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repominer/repominer/core"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/iocache"
	"github.com/repominer/repominer/schema"
)

// authorsCmd aggregates commit counts by author.
var authorsCmd = &cobra.Command{
	Use:   "authors [repo-path]",
	Short: "Show the top contributors ranked by commit count.",
	Long: `Aggregate Git history by author and rank contributors by commit count.

Authors are keyed by email when available, falling back to the author
name. Each group reports its commit count and share of the total,
helping you:
- See who carries the most change volume in a repository
- Spot knowledge concentration on a single contributor
- Track contributor churn across time windows

Examples:
  # Rank contributors over the last six months
  repominer authors

  # Rank contributors for a specific window
  repominer authors --start "1 year ago" --end "3 months ago"

  # Export contributor counts to CSV for tracking
  repominer authors --output csv --output-file authors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrouping(rootCtx, cfg, gitClient, iocache.Manager, schema.AuthorKey); err != nil {
			contract.LogFatal("Cannot run authors aggregation", err)
		}
	},
}
