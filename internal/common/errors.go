// Sentinel errors shared between client layers. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")

	// Returned when a lookup matched nothing.
	ErrNotFound = errors.New("not found")
)
