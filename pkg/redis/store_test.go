package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle/pkg/redis"
	"github.com/dmitrymomot/spindle/pkg/session"
)

var _ session.Store = (*redis.Store)(nil)

func connect(t *testing.T) redis.Config {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}
	return redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
		KeyPrefix:      "test:" + uuid.NewString() + ":",
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	_, err = redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestStore(t *testing.T) {
	cfg := connect(t)
	ctx := context.Background()

	client, err := redis.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewStoreFromConfig(client, cfg)
	require.NoError(t, store.Healthcheck(ctx))

	v, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, store.Set(ctx, "sess:a", []byte(`{"user_id":""}`), time.Minute))
	require.NoError(t, store.Set(ctx, "lazy:b", []byte(`{}`), 0))

	v, err = store.Get(ctx, "sess:a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":""}`, string(v))

	ttl, err := store.TTL(ctx, "sess:a")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "sess:a", "lazy:b", "never-existed"))
	v, err = store.Get(ctx, "lazy:b")
	require.NoError(t, err)
	assert.Nil(t, v)

	raw, err := client.Get(ctx, cfg.KeyPrefix+"sess:a").Result()
	assert.Error(t, err)
	assert.Empty(t, raw)
}
