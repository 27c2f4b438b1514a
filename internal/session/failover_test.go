package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps a MemoryStore and fails every call while down is set.
type flakyStore struct {
	inner *MemoryStore
	down  atomic.Bool
	calls atomic.Int64
}

var errStoreDown = errors.New("store down")

func (f *flakyStore) Get(ctx context.Context, sessionID string) (string, error) {
	f.calls.Add(1)
	if f.down.Load() {
		return "", errStoreDown
	}
	return f.inner.Get(ctx, sessionID)
}

func (f *flakyStore) Set(ctx context.Context, sessionID, token string) error {
	f.calls.Add(1)
	if f.down.Load() {
		return errStoreDown
	}
	return f.inner.Set(ctx, sessionID, token)
}

func (f *flakyStore) Clear(ctx context.Context, sessionID string) error {
	f.calls.Add(1)
	if f.down.Load() {
		return errStoreDown
	}
	return f.inner.Clear(ctx, sessionID)
}

func newFailoverForTest() (*FailoverStore, *flakyStore, *MemoryStore) {
	primary := &flakyStore{inner: NewMemoryStore(time.Hour)}
	fallback := NewMemoryStore(time.Hour)
	logger := zerolog.Nop()
	return NewFailoverStore(primary, fallback, &logger), primary, fallback
}

func TestFailoverStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PrimaryHealthy", func(t *testing.T) {
		store, primary, fallback := newFailoverForTest()

		require.NoError(t, store.Set(ctx, "sid", "Bearer abc"))
		token, err := store.Get(ctx, "sid")
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", token)

		// Fallback was never written.
		fromFallback, _ := fallback.Get(ctx, "sid")
		assert.Empty(t, fromFallback)
		assert.Positive(t, primary.calls.Load())
	})

	t.Run("FallsBackOnError", func(t *testing.T) {
		store, primary, fallback := newFailoverForTest()
		primary.down.Store(true)

		require.NoError(t, store.Set(ctx, "sid", "Bearer abc"))
		token, err := store.Get(ctx, "sid")
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", token)

		fromFallback, _ := fallback.Get(ctx, "sid")
		assert.Equal(t, "Bearer abc", fromFallback)
	})

	t.Run("SkipsPrimaryWhileDown", func(t *testing.T) {
		store, primary, _ := newFailoverForTest()
		primary.down.Store(true)

		_, _ = store.Get(ctx, "sid") // trips the breaker
		before := primary.calls.Load()
		_, _ = store.Get(ctx, "sid")
		_, _ = store.Get(ctx, "sid")
		assert.Equal(t, before, primary.calls.Load())
	})

	t.Run("ClearPurgesBothStores", func(t *testing.T) {
		store, primary, fallback := newFailoverForTest()
		require.NoError(t, primary.inner.Set(ctx, "sid", "Bearer abc"))
		require.NoError(t, fallback.Set(ctx, "sid", "Bearer abc"))

		require.NoError(t, store.Clear(ctx, "sid"))

		fromPrimary, _ := primary.inner.Get(ctx, "sid")
		fromFallback, _ := fallback.Get(ctx, "sid")
		assert.Empty(t, fromPrimary)
		assert.Empty(t, fromFallback)
	})
}
