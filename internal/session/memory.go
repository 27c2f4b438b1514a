package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store. It backs tests and serves as the
// failover target when Redis is down.
type MemoryStore struct {
	entries sync.Map
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	val, ok := s.entries.Load(sessionID)
	if !ok {
		return "", nil
	}
	entry := val.(memoryEntry)
	if s.ttl > 0 && time.Now().After(entry.expiresAt) {
		s.entries.Delete(sessionID)
		return "", nil
	}
	return entry.token, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, token string) error {
	s.entries.Store(sessionID, memoryEntry{
		token:     token,
		expiresAt: time.Now().Add(s.ttl),
	})
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.entries.Delete(sessionID)
	return nil
}
