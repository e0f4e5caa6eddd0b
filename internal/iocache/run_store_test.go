package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/schema"
)

func newSQLiteRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func TestRunStoreLifecycle(t *testing.T) {
	store := newSQLiteRunStore(t)

	startTime := time.Now().Add(-time.Minute)
	runID, err := store.BeginRun(startTime, "author", map[string]any{"limit": 25})
	require.NoError(t, err)
	assert.Positive(t, runID)

	groups := []schema.GroupCount{
		{Key: "alice@example.com", Commits: 30, Share: 60},
		{Key: "bob@example.com", Commits: 20, Share: 40},
	}
	require.NoError(t, store.RecordGroupCounts(runID, "author", groups))
	require.NoError(t, store.EndRun(runID, time.Now(), 50))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "author", runs[0].Dimension)
	assert.Equal(t, 50, runs[0].TotalCommits)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].DurationMs)
	assert.Positive(t, *runs[0].DurationMs)
	assert.Contains(t, runs[0].ConfigParams, `"limit":25`)

	counts, err := store.GetAllGroupCounts()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "alice@example.com", counts[0].GroupKey)
	assert.Equal(t, 30, counts[0].Commits)
	assert.InDelta(t, 60.0, counts[0].Share, 0.001)
}

func TestRunStoreIncompleteRun(t *testing.T) {
	store := newSQLiteRunStore(t)

	_, err := store.BeginRun(time.Now(), "file", nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].DurationMs)
	assert.Zero(t, runs[0].TotalCommits)
}

func TestRunStoreMultipleRunsOrdered(t *testing.T) {
	store := newSQLiteRunStore(t)

	first, err := store.BeginRun(time.Now().Add(-2*time.Hour), "author", nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now().Add(-time.Hour), "date", nil)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].RunID) // oldest first
	assert.Equal(t, second, runs[1].RunID)
}

func TestRunStoreStatus(t *testing.T) {
	store := newSQLiteRunStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	runID, err := store.BeginRun(time.Now(), "author", nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(runID, time.Now(), 10))
	require.NoError(t, store.RecordGroupCounts(runID, "author", []schema.GroupCount{{Key: "a", Commits: 10, Share: 100}}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 10, status.TotalCommits)
	assert.Equal(t, int64(1), status.TableSizes[minerRunsTable])
	assert.Equal(t, int64(1), status.TableSizes[groupCountsTable])
}

func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "author", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.EndRun(0, time.Now(), 5))
	require.NoError(t, store.RecordGroupCounts(0, "author", nil))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)
}

func TestMigrateRunsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	// Up to latest, then all the way back down
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, 0))

	// Up to a specific version
	require.NoError(t, MigrateRuns(schema.SQLiteBackend, dbPath, 1))
}

func TestMigrateRunsNoneBackend(t *testing.T) {
	assert.Error(t, MigrateRuns(schema.NoneBackend, "", -1))
}
