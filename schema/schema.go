// Package schema has configs, models and shared types for all parts of repominer.
package schema

import "time"

// Commit is the normalized record for a single commit as reported by the
// underlying version-control system. Commits are immutable once read and
// are held only for the duration of a single run.
type Commit struct {
	Hash      string    `json:"hash"`      // Full commit identifier
	Author    string    `json:"author"`    // Author name
	Email     string    `json:"email"`     // Author email
	Timestamp time.Time `json:"timestamp"` // Author timestamp
	Message   string    `json:"message"`   // First line of the commit message
	Files     []string  `json:"files"`     // Changed file paths, in the order Git reports them
}

// GroupCount is one entry of an aggregation result: a group key with the
// number of commits associated with it.
type GroupCount struct {
	Key     string  `json:"key"`
	Commits int     `json:"commits"`
	Share   float64 `json:"share"` // Percentage of the commit total (0-100)
}

// MiningReport bundles the ranked aggregation output with run metadata for
// the output writers.
type MiningReport struct {
	Dimension    GroupKey     `json:"dimension"`
	Groups       []GroupCount `json:"groups"`
	TotalCommits int          `json:"total_commits"`
	TotalGroups  int          `json:"total_groups"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
}

// RunRecord describes one recorded mining run in the run store.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	Dimension    string
	TotalCommits int
	ConfigParams string // JSON-encoded parameters of the run
}

// GroupCountRecord is a persisted per-group count tied to a run.
type GroupCountRecord struct {
	RunID     int64
	Dimension string
	GroupKey  string
	Commits   int
	Share     float64
}

// CacheStatus holds status information about the commit cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// RunsStatus holds status information about the run store.
type RunsStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalCommits  int
	TableSizes    map[string]int64
}
