// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/repominer/repominer/schema"
)

// ReadOptions constrains a single history read.
type ReadOptions struct {
	// Start and End bound the commit window. Zero values mean unbounded.
	Start time.Time
	End   time.Time

	// MaxCommits caps the number of commits returned. Zero means no cap.
	MaxCommits int

	// SkipMerges drops commits with more than one parent.
	SkipMerges bool
}

// GitClient defines the history reader contract. Implementations produce a
// finite sequence of normalized commits in reverse-chronological order, as
// reported by the underlying version-control system. This allows the core
// mining logic to be tested without needing a real git repository.
type GitClient interface {
	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// ReadCommits reads the commit history of the repository. The sequence is
	// finite and is consumed in a single pass; it is not restartable across
	// process runs.
	ReadCommits(ctx context.Context, repoPath string, opts ReadOptions) ([]schema.Commit, error)
}

// StoreManager defines the interface for managing durable stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetCommitStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for commit cache storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking mining runs and their
// aggregated group counts.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, dimension string, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data.
	EndRun(runID int64, endTime time.Time, totalCommits int) error

	// RecordGroupCounts stores the ranked group counts produced by a run.
	RecordGroupCounts(runID int64, dimension string, groups []schema.GroupCount) error

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllGroupCounts returns every recorded group count, oldest run first.
	GetAllGroupCounts() ([]schema.GroupCountRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunsStatus, error)

	// Close closes the underlying connection.
	Close() error
}
