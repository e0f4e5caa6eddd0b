package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repominer/repominer/core"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/iocache"
	"github.com/repominer/repominer/schema"
)

// activityCmd aggregates commit counts by date bucket.
var activityCmd = &cobra.Command{
	Use:   "activity [repo-path]",
	Short: "Show commit activity bucketed by day, week or month.",
	Long: `Aggregate Git history into calendar buckets and rank them by commit count.

Buckets follow the --period flag: daily (2024-07-01), ISO weekly
(2024-W27) or monthly (2024-07). Use this to:
- Find the busiest periods in a repository's history
- Spot development lulls and release crunches
- Feed commit cadence into dashboards via CSV/JSON/Parquet

Examples:
  # Monthly activity over the last six months
  repominer activity

  # Daily activity for a release window
  repominer activity --period day --start 2024-06-01T00:00:00Z --end 2024-07-01T00:00:00Z

  # Chronological rather than busiest-first ordering
  repominer activity --period week --sort key`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrouping(rootCtx, cfg, gitClient, iocache.Manager, schema.DateKey); err != nil {
			contract.LogFatal("Cannot run activity aggregation", err)
		}
	},
}
