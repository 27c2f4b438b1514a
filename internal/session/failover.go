package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves credentials from a primary store (Redis) and
// falls back to an in-memory store when the primary errors. The primary
// is re-probed after a cooldown so a recovered Redis takes over again.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed probe
}

const recoverAfter = time.Minute

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary session store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) shouldProbe() bool {
	return time.Since(time.Unix(0, s.lastCheck.Load())) > recoverAfter
}

func (s *FailoverStore) Get(ctx context.Context, sessionID string) (string, error) {
	if !s.isDown.Load() {
		token, err := s.primary.Get(ctx, sessionID)
		if err == nil {
			return token, nil
		}
		s.markDown(err)
	} else if s.shouldProbe() {
		token, err := s.primary.Get(ctx, sessionID)
		if err == nil {
			s.isDown.Store(false)
			return token, nil
		}
		s.lastCheck.Store(time.Now().UnixNano())
	}

	return s.fallback.Get(ctx, sessionID)
}

func (s *FailoverStore) Set(ctx context.Context, sessionID, token string) error {
	if !s.isDown.Load() {
		if err := s.primary.Set(ctx, sessionID, token); err == nil {
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Set(ctx, sessionID, token)
}

func (s *FailoverStore) Clear(ctx context.Context, sessionID string) error {
	if !s.isDown.Load() {
		if err := s.primary.Clear(ctx, sessionID); err == nil {
			// Clear the fallback too so a later failover cannot revive
			// an invalidated credential.
			_ = s.fallback.Clear(ctx, sessionID)
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Clear(ctx, sessionID)
}
