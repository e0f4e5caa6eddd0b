// Package agg has aggregation logic for normalized commit data.
package agg

import (
	"fmt"
	"sort"
	"time"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// GroupCommits aggregates commits into a mapping of group key to commit
// count. The function is pure: it reads the input slice and produces a fresh
// map, with no I/O. An empty input produces an empty mapping.
//
// For the author dimension, the group key is the lowercased author email
// (falling back to the author name when the email is empty). For the date
// dimension, the key is the bucket start for the configured period. For the
// file dimension, every file touched by a commit counts once for that commit.
func GroupCommits(commits []schema.Commit, key schema.GroupKey, period schema.Period) (map[string]int, error) {
	if _, ok := schema.ValidGroupKeys[key]; !ok {
		return nil, fmt.Errorf("%w: invalid group key %q", contract.ErrConfiguration, key)
	}
	if key == schema.DateKey {
		if _, ok := schema.ValidPeriods[period]; !ok {
			return nil, fmt.Errorf("%w: invalid period %q", contract.ErrConfiguration, period)
		}
	}

	counts := make(map[string]int)
	for _, c := range commits {
		switch key {
		case schema.AuthorKey:
			counts[schema.ContributorKey(c.Author, c.Email)]++
		case schema.DateKey:
			counts[BucketKey(c.Timestamp, period)]++
		case schema.FileKey:
			for _, f := range c.Files {
				counts[f]++
			}
		}
	}
	return counts, nil
}

// BucketKey returns the date bucket identifier for a timestamp.
// Day buckets use the calendar date, week buckets use the ISO year and week
// number, and month buckets use the calendar month.
func BucketKey(ts time.Time, period schema.Period) string {
	switch period {
	case schema.DayPeriod:
		return ts.Format("2006-01-02")
	case schema.WeekPeriod:
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default: // Month
		return ts.Format("2006-01")
	}
}

// FilterCommitFiles returns a copy of the commits with their file lists
// reduced to paths that pass the path filter and exclude patterns. Commit
// counts are unaffected; only the file dimension and per-commit file listings
// see the reduced set.
func FilterCommitFiles(commits []schema.Commit, pathFilter string, excludes []string) []schema.Commit {
	result := make([]schema.Commit, len(commits))
	for i, c := range commits {
		filtered := c
		filtered.Files = filterPaths(c.Files, pathFilter, excludes)
		result[i] = filtered
	}
	return result
}

// filterPaths applies the path filter prefix and exclude patterns to a file list.
func filterPaths(paths []string, pathFilter string, excludes []string) []string {
	var kept []string
	for _, p := range paths {
		if pathFilter != "" && !hasPathPrefix(p, pathFilter) {
			continue
		}
		if contract.ShouldIgnore(p, excludes) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// hasPathPrefix reports whether path falls under the filter prefix.
func hasPathPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix
}

// RankGroups converts a count mapping into a ranked, limited slice of group
// counts with each group's share of the commit total. Sorting is by count
// descending (key ascending as tiebreaker) or by key ascending.
func RankGroups(counts map[string]int, limit int, sortMode schema.SortMode) []schema.GroupCount {
	total := 0
	for _, n := range counts {
		total += n
	}

	groups := make([]schema.GroupCount, 0, len(counts))
	for k, n := range counts {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total) * 100
		}
		groups = append(groups, schema.GroupCount{Key: k, Commits: n, Share: share})
	}

	switch sortMode {
	case schema.KeySort:
		sort.Slice(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	default: // Count
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].Commits != groups[j].Commits {
				return groups[i].Commits > groups[j].Commits
			}
			return groups[i].Key < groups[j].Key
		})
	}

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// BuildReport assembles the final mining report from ranked groups.
func BuildReport(dimension schema.GroupKey, groups []schema.GroupCount, counts map[string]int, commits []schema.Commit, start, end time.Time) *schema.MiningReport {
	return &schema.MiningReport{
		Dimension:    dimension,
		Groups:       groups,
		TotalCommits: len(commits),
		TotalGroups:  len(counts),
		Start:        start,
		End:          end,
	}
}
