// Package notify replaces scattered per-page alert state with one
// process-wide notification center: messages are pushed once, shown on
// the next render and auto-expire.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a single flash message bound to a portal session.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Center holds pending notifications per session. Lifecycle: pushed →
// drained on the next page render → gone; undrained entries expire
// after the TTL.
type Center struct {
	mu      sync.Mutex
	pending map[string][]Notification
	ttl     time.Duration
	now     func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Center{
		pending: make(map[string][]Notification),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Push queues a notification for the session.
func (c *Center) Push(sessionID string, level Level, message string) {
	now := c.now()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[sessionID] = append(c.pending[sessionID], n)
}

// Drain returns the session's live notifications and clears them.
// Expired entries are silently dropped.
func (c *Center) Drain(sessionID string) []Notification {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	queued := c.pending[sessionID]
	delete(c.pending, sessionID)

	var live []Notification
	for _, n := range queued {
		if now.Before(n.ExpiresAt) {
			live = append(live, n)
		}
	}
	return live
}

// TTL exposes the auto-dismiss duration so templates can mirror it
// client-side.
func (c *Center) TTL() time.Duration {
	return c.ttl
}
