// Package core has core logic for reading, aggregating and ranking commits.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/repominer/repominer/core/agg"
	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/internal/outwriter"
	"github.com/repominer/repominer/schema"
)

// ExecutorFunc defines the function signature for executing different mining modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// GetCommitsResults reads the commit history and applies path filters and
// excludes to the normalized records. Exposed for the MCP server.
func GetCommitsResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) ([]schema.Commit, error) {
	commits, err := cachedReadCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	return agg.FilterCommitFiles(commits, cfg.PathFilter, cfg.Excludes), nil
}

// GetGroupingResults reads the commit history, aggregates it along the given
// dimension and records the run. Exposed for the MCP server.
func GetGroupingResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, dimension schema.GroupKey) (*schema.MiningReport, error) {
	startTime := time.Now()

	commits, err := cachedReadCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}

	// The file dimension honors path filters and excludes; author and date
	// dimensions count every commit in the window.
	grouped := commits
	if dimension == schema.FileKey {
		grouped = agg.FilterCommitFiles(commits, cfg.PathFilter, cfg.Excludes)
	}

	counts, err := agg.GroupCommits(grouped, dimension, cfg.Period)
	if err != nil {
		return nil, err
	}
	ranked := agg.RankGroups(counts, cfg.ResultLimit, cfg.Sort)
	report := agg.BuildReport(dimension, ranked, counts, commits, cfg.StartTime, cfg.EndTime)

	trackRun(mgr, cfg, report, startTime, time.Now())
	return report, nil
}

// ExecuteCommits reads the commit history and prints the normalized commit
// records. It serves as the main entry point for the 'commits' command.
func ExecuteCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) error {
	start := time.Now()

	commits, err := GetCommitsResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return errors.New("no commits found in the requested window")
	}

	duration := time.Since(start)
	return outwriter.PrintCommits(commits, cfg, duration)
}

// ExecuteGrouping reads the commit history, aggregates it along the given
// dimension and prints the ranked report. It serves as the entry point for
// the 'authors', 'activity' and 'files' commands.
func ExecuteGrouping(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager, dimension schema.GroupKey) error {
	start := time.Now()

	report, err := GetGroupingResults(ctx, cfg, client, mgr, dimension)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.PrintReport(report, cfg, duration)
}
