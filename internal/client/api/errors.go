package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/campusevents/internal/common"
)

// NetworkError means no response was received at all: timeout, DNS failure,
// connection refused. It is the only failure class the retry policy will
// retry, because nothing definitive came back from the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets callers match with errors.Is(err, common.ErrUnavailable) without
// depending on this package's concrete types.
func (e *NetworkError) Is(target error) bool { return target == common.ErrUnavailable }

// HTTPError means the server responded with a failure status. It carries the
// numeric status and the parsed error body so upstream layers can classify
// it. HTTP errors are never retried: they represent a server decision.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// Is maps the well-known statuses onto the shared sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrInternal:
		return e.Status >= http.StatusInternalServerError
	default:
		return false
	}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// HTTPError.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// MessageOf returns the server-provided error message carried by err,
// or "" if there is none.
func MessageOf(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return ""
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
