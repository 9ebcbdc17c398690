package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadhub/server/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ auth.RevocationStore = (*RedisRevocations)(nil)

func newTestRevocations(t *testing.T) *RedisRevocations {
	t.Helper()
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping redis test")
	}

	rdb, err := NewRedisClient(context.Background(), redisURL)
	require.NoError(t, err, "redis must be reachable at REDIS_URL")
	t.Cleanup(func() { rdb.Close() })
	return NewRedisRevocations(rdb)
}

func TestRedisRevocations_addContains(t *testing.T) {
	ctx := context.Background()
	r := newTestRevocations(t)
	hash := uuid.NewString()

	ok, err := r.Contains(ctx, hash)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Add(ctx, hash, time.Now().Add(time.Minute)))
	require.NoError(t, r.Add(ctx, hash, time.Now().Add(time.Minute)))

	ok, err = r.Contains(ctx, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := r.rdb.TTL(ctx, revokedKeyPrefix+hash).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= 61*time.Second, "ttl = %v", ttl)
}

func TestRedisRevocations_skipsExpired(t *testing.T) {
	ctx := context.Background()
	r := newTestRevocations(t)
	hash := uuid.NewString()

	require.NoError(t, r.Add(ctx, hash, time.Now().Add(-time.Minute)))
	ok, err := r.Contains(ctx, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient_badURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
