// Package gateway is the single door to the remote booking backend. It
// attaches the stored credential to outbound requests, maps responses
// onto the error taxonomy and revokes the session exactly once when the
// backend reports the credential invalid.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lockievisual/studio-portal/internal/config"
	"github.com/lockievisual/studio-portal/internal/events"
	"github.com/lockievisual/studio-portal/internal/metrics"
	"github.com/lockievisual/studio-portal/internal/session"
)

// Client calls the remote REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	bus        *events.Bus
	logger     *zerolog.Logger

	// one *sync.Once per session so concurrent 401s clear the
	// credential a single time, not once per in-flight request
	invalidations sync.Map
}

func New(cfg config.BackendConfig, sessions session.Store, bus *events.Bus, logger *zerolog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessions:   sessions,
		bus:        bus,
		logger:     logger,
	}
}

// StoreCredential normalizes and saves the bearer token for a session,
// re-arming the invalidation guard so a later 401 can fire again.
func (c *Client) StoreCredential(ctx context.Context, sessionID, rawToken string) error {
	token := session.NormalizeToken(rawToken)
	if token == "" {
		return fmt.Errorf("empty access token")
	}
	if err := c.sessions.Set(ctx, sessionID, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	c.invalidations.Delete(sessionID)
	return nil
}

// HasCredential reports whether a credential is stored for the session.
func (c *Client) HasCredential(ctx context.Context, sessionID string) bool {
	token, err := c.sessions.Get(ctx, sessionID)
	return err == nil && token != ""
}

// Logout discards the stored credential. Safe to call repeatedly.
func (c *Client) Logout(ctx context.Context, sessionID string) {
	if err := c.sessions.Clear(ctx, sessionID); err != nil {
		c.logger.Error().Err(err).Str("session_id", sessionID).Msg("clear credential")
	}
	c.invalidations.Delete(sessionID)
}

// Request performs an unauthenticated call (login, signup, contact).
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, "", body, out)
}

// Authorized performs a call with the session's bearer credential. A
// 401/403 response revokes the session and returns ErrUnauthorized.
func (c *Client) Authorized(ctx context.Context, sessionID, method, path string, body, out any) error {
	token, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return ErrUnauthorized
	}

	err = c.do(ctx, method, path, token, body, out)
	if errors.Is(err, ErrUnauthorized) {
		c.invalidate(ctx, sessionID)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncGatewayError("network")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.IncGatewayError("unauthorized")
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		metrics.IncGatewayError("server")
		return &ServerError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	case resp.StatusCode >= 400:
		metrics.IncGatewayError("validation")
		return &ValidationError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.IncGatewayError("server")
		return &ServerError{Status: resp.StatusCode, Message: "unexpected response payload"}
	}
	return nil
}

// invalidate clears the credential once per invalidation event, however
// many in-flight requests observe the same 401.
func (c *Client) invalidate(ctx context.Context, sessionID string) {
	val, _ := c.invalidations.LoadOrStore(sessionID, &sync.Once{})
	val.(*sync.Once).Do(func() {
		c.logger.Warn().Str("session_id", sessionID).Msg("backend revoked credential, clearing session")
		if err := c.sessions.Clear(ctx, sessionID); err != nil {
			c.logger.Error().Err(err).Str("session_id", sessionID).Msg("clear revoked credential")
		}
		c.bus.Publish(events.EventSessionRevoked, sessionID)
	})
}

// errorMessage pulls a user-facing message out of a backend error body.
// Different backend revisions use "error" or "message".
func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return "request failed"
	}
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Message != "" {
		return payload.Message
	}
	return "request failed"
}
