package dummyjson

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnreachable is returned when the catalog backend cannot be contacted.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrHTTPStatus is returned when the backend answers with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")
)

// TransportError is a transport-level failure: DNS, connection refused, TLS,
// timeout. The request never produced an HTTP response.
type TransportError struct {
	// Cause is the underlying error from the HTTP client.
	Cause error
}

// Error returns a human-readable description of the transport failure.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend unreachable: %v", e.Cause)
	}
	return "backend unreachable"
}

// Unwrap returns the underlying error cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrUnreachable).
func (e *TransportError) Is(target error) bool {
	return target == ErrUnreachable
}

// StatusError is a non-2xx HTTP response from the backend.
type StatusError struct {
	// StatusCode is the HTTP status the backend returned.
	StatusCode int
	// Body is the raw response body, kept for diagnostics.
	Body string
}

// Error returns a human-readable description of the status failure.
func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrHTTPStatus).
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}
