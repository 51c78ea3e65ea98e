package strapi

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrUnauthorized means the backend rejected the credential (401/403).
	// The session manager reacts by forcing a sign-out.
	ErrUnauthorized = errors.New("credential rejected by backend")

	// ErrMalformedResponse means a 2xx response body could not be parsed,
	// or a login response was missing its jwt/user pair
	ErrMalformedResponse = errors.New("malformed backend response")
)

// APIError is an error envelope returned by the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Message)
}
