// Package common defines shared constants and sentinel errors used across
// the vcap client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Remote errors; the api transport sentinels wrap these.
	ErrorNotFound     = errors.New("not found")
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (bad local input, caught before any network call).
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed credential).
	ErrInvalidToken = errors.New("invalid token")
)
