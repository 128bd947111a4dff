// Package store provides the redis-backed RefCache used to memoize
// network-resolved references (default branch names, PR head commits).
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renshaw/repodigest/apps/server/internal/ingest"
)

const refKeyPrefix = "ref:"

// Compile-time check: *RedisRefCache implements ingest.RefCache.
var _ ingest.RefCache = (*RedisRefCache)(nil)

// RedisRefCache implements RefCache using go-redis directly. Entries carry a
// TTL chosen by the caller; there is no index — keys expire on their own.
type RedisRefCache struct {
	rdb *redis.Client
}

// NewRedisRefCache creates a new RedisRefCache.
func NewRedisRefCache(rdb *redis.Client) *RedisRefCache {
	return &RedisRefCache{rdb: rdb}
}

// Get retrieves a cached resolution, reporting ok=false on a miss.
func (c *RedisRefCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, refKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get ref %q: %w", key, err)
	}
	return val, true, nil
}

// Set stores a resolution with the given TTL.
func (c *RedisRefCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, refKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set ref %q: %w", key, err)
	}
	return nil
}
