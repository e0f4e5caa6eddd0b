package core

import (
	"time"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// trackRun records a completed mining run in the run store. Tracking is best
// effort: failures degrade to warnings so the report still reaches the user.
func trackRun(mgr contract.StoreManager, cfg *contract.Config, report *schema.MiningReport, startTime, endTime time.Time) {
	store := mgr.GetRunStore()
	if store == nil {
		return
	}

	configParams := map[string]any{
		"repo_path":   cfg.RepoPath,
		"dimension":   string(report.Dimension),
		"period":      string(cfg.Period),
		"limit":       cfg.ResultLimit,
		"max":         cfg.MaxCommits,
		"skip_merges": cfg.SkipMerges,
		"filter":      cfg.PathFilter,
		"git_backend": string(cfg.GitBackend),
	}

	runID, err := store.BeginRun(startTime, string(report.Dimension), configParams)
	if err != nil {
		contract.LogWarn("run tracking disabled for this run", err)
		return
	}

	if err := store.RecordGroupCounts(runID, string(report.Dimension), report.Groups); err != nil {
		contract.LogWarn("failed to record group counts", err)
	}

	if err := store.EndRun(runID, endTime, report.TotalCommits); err != nil {
		contract.LogWarn("failed to finalize run record", err)
	}
}
