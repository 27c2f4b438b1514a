package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized signals that the backend rejected the credential
// (401/403) or that no credential is stored for the session. The caller
// is expected to route the user to the login entry point.
var ErrUnauthorized = errors.New("session unauthorized")

// ValidationError is a 4xx rejection other than auth; the message is
// safe to surface to the user.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// ServerError is a 5xx or an unusable payload; shown generically.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// NetworkError wraps a transport failure or client-side timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Kind maps an error onto its taxonomy label, used for metrics and for
// picking the user-facing message.
func Kind(err error) string {
	var validation *ValidationError
	var server *ServerError
	var network *NetworkError

	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &network):
		return "network"
	case errors.As(err, &server):
		return "server"
	default:
		return "internal"
	}
}
