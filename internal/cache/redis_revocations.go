// Package cache holds the Redis-backed shared state used when several API
// instances sit behind one load balancer.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// RedisRevocations is a RevocationStore shared by every instance using the same Redis.
// Each entry expires together with the token it revokes.
type RedisRevocations struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisClient parses redisURL, connects and pings before returning.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisRevocations wraps an existing client
func NewRedisRevocations(rdb *redis.Client) *RedisRevocations {
	return &RedisRevocations{rdb: rdb, now: time.Now}
}

// Add stores the token hash until expiresAt. Tokens already past expiry are skipped,
// they fail verification on their own.
func (r *RedisRevocations) Add(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	// Round up so the key never outlives the token by less than a second
	ttl = ttl.Truncate(time.Second) + time.Second

	if err := r.rdb.Set(ctx, revokedKeyPrefix+tokenHash, 1, ttl).Err(); err != nil {
		return fmt.Errorf("caching revocation: %w", err)
	}
	return nil
}

// Contains reports whether the token hash is revoked
func (r *RedisRevocations) Contains(ctx context.Context, tokenHash string) (bool, error) {
	err := r.rdb.Get(ctx, revokedKeyPrefix+tokenHash).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetching revocation: %w", err)
	}
	return true, nil
}
