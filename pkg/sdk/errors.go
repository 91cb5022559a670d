package sdk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login when the server rejects the
	// email/password pair. No existing session is touched.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when an authenticated request comes back
	// unauthorized. By the time the caller sees it the local session has
	// already been invalidated and the expiry handler fired.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError reports input the server refused, e.g. a duplicate email or
// a malformed registration payload. The caller may correct and resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// APIError is any other non-success response. Message carries the server's
// error envelope, which never includes internal diagnostic detail.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}
