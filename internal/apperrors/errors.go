// Package apperrors holds the error taxonomy shared by the handlers and the
// API client. Callers match with errors.Is; wrapped detail carries the cause.
package apperrors

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so the two stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrRegistration = errors.New("registration failed")
	ErrFetch        = errors.New("fetch failed")
	ErrMutation     = errors.New("mutation failed")
)
