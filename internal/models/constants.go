package models

import "strings"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	// GatewayTimeout is the fixed client-side timeout for backend calls.
	GatewayTimeout = 10 // seconds

	// NotificationTTL is how long a flash notification stays visible.
	NotificationTTL = 4 // seconds

	// SessionTTLHours is the portal session lifetime.
	SessionTTLHours = 24

	// RateLimitRequests allowed per window on public forms.
	RateLimitRequests = 10

	// RateLimitWindow in seconds.
	RateLimitWindow = 60
)

// statusAliases maps the status spellings seen across backend revisions
// onto the canonical set.
var statusAliases = map[string]string{
	"canceled":  StatusCancelled,
	"completed": StatusDelivered,
	"complete":  StatusDelivered,
	"approved":  StatusConfirmed,
	"declined":  StatusRejected,
}

// NormalizeStatus lower-cases a backend status value and resolves known
// aliases. Unknown values pass through unchanged so nothing is lost.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := statusAliases[s]; ok {
		return canonical
	}
	return s
}
