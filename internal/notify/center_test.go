package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterPushAndDrain(t *testing.T) {
	center := NewCenter(4 * time.Second)

	center.Push("sid-1", LevelSuccess, "Booking confirmed")
	center.Push("sid-1", LevelError, "Network hiccup")
	center.Push("sid-2", LevelInfo, "other session")

	got := center.Drain("sid-1")
	require.Len(t, got, 2)
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, "Booking confirmed", got[0].Message)
	assert.NotEmpty(t, got[0].ID)

	// Drained once, gone after.
	assert.Empty(t, center.Drain("sid-1"))

	// Other sessions are unaffected.
	assert.Len(t, center.Drain("sid-2"), 1)
}

func TestCenterExpiry(t *testing.T) {
	center := NewCenter(4 * time.Second)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	center.now = func() time.Time { return current }

	center.Push("sid", LevelInfo, "will expire")
	current = current.Add(5 * time.Second)

	assert.Empty(t, center.Drain("sid"), "expired notifications are dropped")
}

func TestCenterDefaultTTL(t *testing.T) {
	center := NewCenter(0)
	assert.Equal(t, 4*time.Second, center.TTL())
}
