package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached history read stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// cachedReadCommits reads the commit history through the cache when a commit
// store is available, falling back to a direct read otherwise.
func cachedReadCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) ([]schema.Commit, error) {
	store := mgr.GetCommitStore()
	if store == nil {
		// Fallback to direct read
		return client.ReadCommits(ctx, cfg.RepoPath, cfg.ReadOptions())
	}

	key := generateCacheKey(ctx, cfg, client)

	// Check for cache hit
	if commits := checkCacheHit(store, key); commits != nil {
		return commits, nil
	}

	// Cache miss: read and store
	return readAndStore(ctx, cfg, client, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached history read.
func checkCacheHit(store contract.CacheStore, key string) []schema.Commit {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var commits []schema.Commit
			if err := json.Unmarshal(data, &commits); err == nil {
				return commits // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// readAndStore reads the history and stores the result in the cache.
func readAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, key string) ([]schema.Commit, error) {
	commits, err := client.ReadCommits(ctx, cfg.RepoPath, cfg.ReadOptions())
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(commits); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return commits, nil
}

// generateCacheKey creates a unique key based on the read parameters.
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	// Use canonical helpers from contract.Config to ensure consistent time granularity
	startHour := cfg.GetCacheStartTime()
	endHour := cfg.GetCacheEndTime()

	// Include repo hash to invalidate cache when repository state changes
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%s:%d:%t:%d:%d:%s",
		cfg.RepoPath,
		cfg.GitBackend,
		cfg.MaxCommits,
		cfg.SkipMerges,
		startHour.Unix(),
		endHour.Unix(),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
