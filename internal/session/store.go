// Package session owns the backend bearer credential for each portal
// session. Nothing outside this package and the gateway reads the raw
// token.
package session

import (
	"context"
	"strings"
)

// Store keeps one opaque bearer credential per portal session, from
// login until logout or the first observed 401/403.
type Store interface {
	// Get returns the stored credential, or "" when absent.
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, token string) error
	Clear(ctx context.Context, sessionID string) error
}

const bearerPrefix = "Bearer "

// NormalizeToken canonicalizes a credential to the "Bearer <token>" form.
// Some backend revisions return the prefix themselves; applying the
// function twice yields the same result.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, bearerPrefix) {
		return token
	}
	return bearerPrefix + token
}
