package iocache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repominer/repominer/internal/contract"
	"github.com/repominer/repominer/schema"
)

// ErrCacheMiss is returned when a cache key is not present in Redis.
var ErrCacheMiss = errors.New("cache miss")

// redisEnvelope wraps a cached value with its version and write timestamp,
// mirroring the columns of the SQL cache table.
type redisEnvelope struct {
	Value     []byte `json:"value"`
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"`
}

// RedisCacheStore implements the CacheStore interface on top of Redis.
// Each cache entry is a JSON envelope under "<prefix>:<key>".
type RedisCacheStore struct {
	rdb    *redis.Client
	prefix string
}

var _ contract.CacheStore = &RedisCacheStore{} // Compile-time check

// NewRedisCacheStore connects to Redis and returns a cache store.
// connStr is either a plain "host:port" address or a redis:// URL.
func NewRedisCacheStore(prefix string, connStr string) (contract.CacheStore, error) {
	var opts *redis.Options
	if u, err := redis.ParseURL(connStr); err == nil {
		opts = u
	} else {
		opts = &redis.Options{Addr: connStr}
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %q: %w. Check that the server is running", connStr, err)
	}

	return &RedisCacheStore{rdb: rdb, prefix: prefix}, nil
}

// fullKey namespaces a cache key under the store prefix.
func (rs *RedisCacheStore) fullKey(key string) string {
	return rs.prefix + ":" + key
}

// Get retrieves a value by key from Redis.
func (rs *RedisCacheStore) Get(key string) ([]byte, int, int64, error) {
	ctx := context.Background()
	raw, err := rs.rdb.Get(ctx, rs.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, 0, ErrCacheMiss
	}
	if err != nil {
		return nil, 0, 0, err
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt cache entry for key %q: %w", key, err)
	}
	return env.Value, env.Version, env.Timestamp, nil
}

// Set inserts or replaces a key/value pair in Redis.
func (rs *RedisCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	env := redisEnvelope{Value: value, Version: version, Timestamp: timestamp}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return rs.rdb.Set(context.Background(), rs.fullKey(key), raw, 0).Err()
}

// GetStatus returns status information about the Redis cache store.
func (rs *RedisCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.RedisBackend),
		Connected: rs.rdb != nil,
	}

	ctx := context.Background()
	var totalBytes int64
	var oldest, newest int64

	iter := rs.rdb.Scan(ctx, 0, rs.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := rs.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // Key may have expired between SCAN and GET
		}
		status.TotalEntries++
		totalBytes += int64(len(raw))

		var env redisEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if oldest == 0 || env.Timestamp < oldest {
			oldest = env.Timestamp
		}
		if env.Timestamp > newest {
			newest = env.Timestamp
		}
	}
	if err := iter.Err(); err != nil {
		return status, fmt.Errorf("failed to scan cache keys: %w", err)
	}

	status.TableSizeBytes = totalBytes
	if status.TotalEntries > 0 {
		status.OldestEntryTime = time.Unix(oldest, 0)
		status.LastEntryTime = time.Unix(newest, 0)
	}
	return status, nil
}

// Close closes the Redis connection.
func (rs *RedisCacheStore) Close() error {
	if rs.rdb != nil {
		return rs.rdb.Close()
	}
	return nil
}

// clearRedisKeys removes all cache entries under the given prefix.
func clearRedisKeys(connStr, prefix string) error {
	store, err := NewRedisCacheStore(prefix, connStr)
	if err != nil {
		return err
	}
	rs := store.(*RedisCacheStore)
	defer func() { _ = rs.Close() }()

	ctx := context.Background()
	iter := rs.rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rs.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %q: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
