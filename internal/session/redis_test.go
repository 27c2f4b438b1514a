package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "sid-1", "Bearer abc123"))

		token, err := store.Get(ctx, "sid-1")
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc123", token)
	})

	t.Run("GetAbsent", func(t *testing.T) {
		token, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "sid-2", "Bearer xyz"))
		require.NoError(t, store.Clear(ctx, "sid-2"))

		token, err := store.Get(ctx, "sid-2")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("TTL", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "sid-3", "Bearer ttl"))
		s.FastForward(2 * time.Hour)

		token, err := store.Get(ctx, "sid-3")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})
}
