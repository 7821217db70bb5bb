package service

import (
	"errors"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrFetch is returned when a catalog list or detail fetch fails.
	ErrFetch = errors.New("fetch failed")

	// ErrSearch is returned when a catalog search fails.
	ErrSearch = errors.New("search failed")

	// ErrAuth is returned when login fails for any reason.
	ErrAuth = errors.New("authentication failed")
)

// FetchError is a failed catalog list or detail fetch. The message is what
// the state layer stores and the UI renders; the cause stays available for
// logging via Unwrap but is never shown.
type FetchError struct {
	// Message is the user-facing description.
	Message string
	// Cause is the underlying client error.
	Cause error
}

// Error returns the user-facing message.
func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error cause.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrFetch).
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// SearchError is a failed catalog search.
type SearchError struct {
	// Message is the user-facing description.
	Message string
	// Cause is the underlying client error.
	Cause error
}

// Error returns the user-facing message.
func (e *SearchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error cause.
func (e *SearchError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrSearch).
func (e *SearchError) Is(target error) bool {
	return target == ErrSearch
}

// AuthError is a failed login. The cause is deliberately discarded: whatever
// went wrong (bad credentials, network failure, backend error), the user
// sees one fixed message and nothing that could leak which part failed.
type AuthError struct{}

// Error returns the fixed login failure message.
func (e *AuthError) Error() string {
	return "Invalid credentials"
}

// Is reports whether this error matches the target error.
// It supports errors.Is(err, ErrAuth).
func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}
