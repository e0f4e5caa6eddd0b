package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repominer/repominer/core"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/iocache"
	"github.com/repominer/repominer/schema"
)

// filesCmd aggregates commit counts by touched file.
var filesCmd = &cobra.Command{
	Use:   "files [repo-path]",
	Short: "Show the most frequently changed files.",
	Long: `Aggregate Git history by touched file and rank paths by commit count.

A commit touching three files contributes one count to each of them.
Path filters and excludes apply before counting, so vendored or
generated trees stay out of the ranking. Use this to:
- Identify churn hotspots worth refactoring attention
- Scope code review focus for a subdirectory
- Compare activity across components of a monorepo

Examples:
  # Most-changed files over the last six months
  repominer files

  # Focus on one component
  repominer files --filter internal/server

  # Keep build output out of the ranking
  repominer files --exclude "dist/,*.gen.go"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrouping(rootCtx, cfg, gitClient, iocache.Manager, schema.FileKey); err != nil {
			contract.LogFatal("Cannot run files aggregation", err)
		}
	},
}
