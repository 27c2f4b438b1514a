package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "Bearer abc123", NormalizeToken("abc123"))
	assert.Equal(t, "Bearer abc123", NormalizeToken("Bearer abc123"))
	assert.Equal(t, "Bearer abc123", NormalizeToken(" abc123 "))
	// Applying the normalization twice must not stack prefixes.
	assert.Equal(t, "Bearer abc123", NormalizeToken(NormalizeToken("abc123")))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "sid-1", "Bearer abc"))
		token, err := store.Get(ctx, "sid-1")
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", token)
	})

	t.Run("GetAbsent", func(t *testing.T) {
		token, err := store.Get(ctx, "nope")
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

	t.Run("ClearIdempotent", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, "sid-2"))
		require.NoError(t, store.Clear(ctx, "sid-2"))
	})

	t.Run("Expiry", func(t *testing.T) {
		short := NewMemoryStore(time.Millisecond)
		require.NoError(t, short.Set(ctx, "sid-3", "Bearer ttl"))
		time.Sleep(5 * time.Millisecond)
		token, err := short.Get(ctx, "sid-3")
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
