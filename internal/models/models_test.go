package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"pending":    StatusPending,
		"Confirmed":  StatusConfirmed,
		" canceled ": StatusCancelled,
		"cancelled":  StatusCancelled,
		"completed":  StatusDelivered,
		"approved":   StatusConfirmed,
		"declined":   StatusRejected,
		"weird":      "weird",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestAllowedActions(t *testing.T) {
	t.Run("PendingExposesConfirmAndRejectOnly", func(t *testing.T) {
		assert.Equal(t, []Action{ActionConfirm, ActionReject}, AllowedActions(StatusPending))
	})

	t.Run("ConfirmedExposesDeliverOnly", func(t *testing.T) {
		assert.Equal(t, []Action{ActionDeliver}, AllowedActions(StatusConfirmed))
	})

	t.Run("TerminalExposesNothing", func(t *testing.T) {
		for _, status := range []string{StatusDelivered, StatusRejected, StatusCancelled} {
			assert.Nil(t, AllowedActions(status), "status=%s", status)
		}
	})

	t.Run("AliasSpelling", func(t *testing.T) {
		assert.Nil(t, AllowedActions("Canceled"))
	})
}

func TestNextStatus(t *testing.T) {
	next, err := NextStatus(StatusPending, ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, next)

	next, err = NextStatus(StatusConfirmed, ActionDeliver)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, next)

	next, err = NextStatus(StatusPending, ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)

	// Confirming an already confirmed booking must be refused client-side.
	_, err = NextStatus(StatusConfirmed, ActionConfirm)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextStatus(StatusDelivered, ActionDeliver)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusCancelled))
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("confirm")
	require.True(t, ok)
	assert.Equal(t, ActionConfirm, a)

	_, ok = ParseAction("escalate")
	assert.False(t, ok)
}

func TestBookingSortKey(t *testing.T) {
	created := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	b := Booking{CreatedAt: created, BookingDate: date}
	assert.Equal(t, created, b.SortKey())

	b = Booking{BookingDate: date}
	assert.Equal(t, date, b.SortKey())
}
