package agg

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

func commitAt(author, email string, ts time.Time, files ...string) schema.Commit {
	return schema.Commit{
		Hash:      fmt.Sprintf("%x", ts.UnixNano()),
		Author:    author,
		Email:     email,
		Timestamp: ts,
		Message:   "change",
		Files:     files,
	}
}

func TestGroupCommitsEmptyInput(t *testing.T) {
	for _, key := range []schema.GroupKey{schema.AuthorKey, schema.DateKey, schema.FileKey} {
		t.Run(string(key), func(t *testing.T) {
			counts, err := GroupCommits(nil, key, schema.MonthPeriod)
			require.NoError(t, err)
			assert.Empty(t, counts)
			assert.NotNil(t, counts)
		})
	}
}

func TestGroupCommitsSingleAuthor(t *testing.T) {
	now := time.Now()
	var commits []schema.Commit
	for i := range 7 {
		commits = append(commits, commitAt("Alice", "Alice@Example.com", now.Add(time.Duration(i)*time.Hour), "main.go"))
	}

	counts, err := GroupCommits(commits, schema.AuthorKey, schema.MonthPeriod)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 7, counts["alice@example.com"])
}

func TestGroupCommitsAuthorFallsBackToName(t *testing.T) {
	commits := []schema.Commit{commitAt("Anonymous", "", time.Now())}

	counts, err := GroupCommits(commits, schema.AuthorKey, schema.MonthPeriod)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["anonymous"])
}

func TestGroupCommitsPartition(t *testing.T) {
	// The author and date dimensions partition the commit set: group counts
	// must sum to the total number of commits.
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	commits := []schema.Commit{
		commitAt("Alice", "alice@example.com", now, "a.go"),
		commitAt("Bob", "bob@example.com", now.Add(24*time.Hour), "a.go", "b.go"),
		commitAt("Alice", "alice@example.com", now.Add(40*24*time.Hour), "c.go"),
		commitAt("Carol", "carol@example.com", now.Add(41*24*time.Hour)),
	}

	for _, key := range []schema.GroupKey{schema.AuthorKey, schema.DateKey} {
		for _, period := range []schema.Period{schema.DayPeriod, schema.WeekPeriod, schema.MonthPeriod} {
			t.Run(string(key)+"/"+string(period), func(t *testing.T) {
				counts, err := GroupCommits(commits, key, period)
				require.NoError(t, err)

				total := 0
				for _, n := range counts {
					total += n
				}
				assert.Equal(t, len(commits), total)
			})
		}
	}
}

func TestGroupCommitsByFile(t *testing.T) {
	now := time.Now()
	commits := []schema.Commit{
		commitAt("Alice", "alice@example.com", now, "a.go", "b.go"),
		commitAt("Bob", "bob@example.com", now, "a.go"),
		commitAt("Carol", "carol@example.com", now), // no files
	}

	counts, err := GroupCommits(commits, schema.FileKey, schema.MonthPeriod)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["a.go"])
	assert.Equal(t, 1, counts["b.go"])
	assert.Len(t, counts, 2)
}

func TestGroupCommitsInvalidInputs(t *testing.T) {
	_, err := GroupCommits(nil, schema.GroupKey("branch"), schema.MonthPeriod)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrConfiguration)

	_, err = GroupCommits(nil, schema.DateKey, schema.Period("quarter"))
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrConfiguration)
}

func TestBucketKey(t *testing.T) {
	ts := time.Date(2025, 1, 2, 15, 30, 0, 0, time.UTC) // Thursday, ISO week 1

	assert.Equal(t, "2025-01-02", BucketKey(ts, schema.DayPeriod))
	assert.Equal(t, "2025-W01", BucketKey(ts, schema.WeekPeriod))
	assert.Equal(t, "2025-01", BucketKey(ts, schema.MonthPeriod))

	// ISO week boundaries: Dec 29 2025 belongs to week 1 of 2026
	boundary := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W01", BucketKey(boundary, schema.WeekPeriod))
}

func TestFilterCommitFiles(t *testing.T) {
	now := time.Now()
	commits := []schema.Commit{
		commitAt("Alice", "alice@example.com", now, "pkg/core/a.go", "docs/readme.md", "go.sum"),
		commitAt("Bob", "bob@example.com", now, "pkg/core/b.go"),
	}

	t.Run("path filter", func(t *testing.T) {
		filtered := FilterCommitFiles(commits, "pkg/", nil)
		require.Len(t, filtered, 2)
		assert.Equal(t, []string{"pkg/core/a.go"}, filtered[0].Files)
		assert.Equal(t, []string{"pkg/core/b.go"}, filtered[1].Files)
	})

	t.Run("excludes", func(t *testing.T) {
		filtered := FilterCommitFiles(commits, "", []string{"go.sum", "docs/"})
		assert.Equal(t, []string{"pkg/core/a.go"}, filtered[0].Files)
	})

	t.Run("input untouched", func(t *testing.T) {
		_ = FilterCommitFiles(commits, "pkg/", []string{"go.sum"})
		assert.Len(t, commits[0].Files, 3)
	})
}

func TestRankGroupsByCount(t *testing.T) {
	counts := map[string]int{"alice": 30, "bob": 20, "carol": 50}

	groups := RankGroups(counts, 0, schema.CountSort)
	require.Len(t, groups, 3)
	assert.Equal(t, "carol", groups[0].Key)
	assert.Equal(t, "alice", groups[1].Key)
	assert.Equal(t, "bob", groups[2].Key)
	assert.InDelta(t, 50.0, groups[0].Share, 0.001)
	assert.InDelta(t, 30.0, groups[1].Share, 0.001)
}

func TestRankGroupsByKey(t *testing.T) {
	counts := map[string]int{"b": 1, "a": 2, "c": 3}

	groups := RankGroups(counts, 0, schema.KeySort)
	require.Len(t, groups, 3)
	assert.Equal(t, "a", groups[0].Key)
	assert.Equal(t, "b", groups[1].Key)
	assert.Equal(t, "c", groups[2].Key)
}

func TestRankGroupsLimitAndTies(t *testing.T) {
	counts := map[string]int{"x": 5, "y": 5, "z": 1}

	groups := RankGroups(counts, 2, schema.CountSort)
	require.Len(t, groups, 2)
	// Ties break on key ascending
	assert.Equal(t, "x", groups[0].Key)
	assert.Equal(t, "y", groups[1].Key)
}

func TestRankGroupsEmpty(t *testing.T) {
	groups := RankGroups(map[string]int{}, 10, schema.CountSort)
	assert.Empty(t, groups)
}

func TestBuildReport(t *testing.T) {
	now := time.Now()
	commits := []schema.Commit{
		commitAt("Alice", "alice@example.com", now, "a.go"),
		commitAt("Bob", "bob@example.com", now, "b.go"),
	}
	counts, err := GroupCommits(commits, schema.AuthorKey, schema.MonthPeriod)
	require.NoError(t, err)
	groups := RankGroups(counts, 25, schema.CountSort)

	report := BuildReport(schema.AuthorKey, groups, counts, commits, now.Add(-time.Hour), now)
	assert.Equal(t, schema.AuthorKey, report.Dimension)
	assert.Equal(t, 2, report.TotalCommits)
	assert.Equal(t, 2, report.TotalGroups)
	assert.Len(t, report.Groups, 2)
}
