package web

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lockievisual/studio-portal/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxKeySession = "portal.session"
	ctxKeyRequest = "portal.request_id"
)

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxKeyRequest, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncHTTP(route)

		s.logger.Info().
			Str("request_id", c.GetString(ctxKeyRequest)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}

// sessionMiddleware resolves the signed cookie into session claims.
// Missing or invalid cookies simply leave the request anonymous.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := s.parseSessionCookie(c.Request); ok {
			c.Set(ctxKeySession, claims)
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) (*sessionClaims, bool) {
	val, ok := c.Get(ctxKeySession)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*sessionClaims)
	return claims, ok
}

// requireAuth redirects anonymous requests, or requests whose backend
// credential is gone, to the login page.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentSession(c)
		if !ok || !s.gw.HasCredential(c.Request.Context(), claims.SessionID) {
			http.SetCookie(c.Writer, clearedSessionCookie(s.secureCookies))
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin additionally insists on the staff role.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentSession(c)
		if !ok || claims.Role != roleAdmin {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// rateLimitMiddleware throttles the public POST surfaces per client IP.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := s.getLimiter(clientIP(c.Request))
		if !lim.Allow() {
			c.String(http.StatusTooManyRequests, "Too many requests, try again shortly.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) getLimiter(key string) *rate.Limiter {
	if v, ok := s.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := s.cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(s.cfg.RateLimit.RPS), burst)
	actual, loaded := s.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}
