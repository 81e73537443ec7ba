package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the server rejected the bearer token.
	// By the time a caller sees this, the session has already been
	// invalidated by the client's interception point.
	ErrUnauthorized = errors.New("authorization rejected")

	// ErrNotFound indicates the referenced entity no longer exists on
	// the server; callers should treat local state as stale and reload.
	ErrNotFound = errors.New("not found")

	// ErrNetwork indicates the request never reached the server.
	ErrNetwork = errors.New("network failure")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrServer indicates a 5xx response. Server internals are never
	// surfaced to the user.
	ErrServer = errors.New("server failure")
)

// ValidationError is a 4xx rejection carrying the server-provided message,
// shown inline near the offending form field.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected (status %d)", e.Status)
	}
	return e.Message
}

// AsValidation unwraps a ValidationError from err, if present.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrNetwork):
		return "NETWORK"
	case errors.Is(err, ErrServer):
		return "SERVER"
	default:
		if _, ok := AsValidation(err); ok {
			return "VALIDATION"
		}
		return "UNKNOWN"
	}
}
