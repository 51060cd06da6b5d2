// Package apperr holds the error kinds shared across the session engine.
// Package-level sentinels wrap one of these so callers can classify with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound                   = errors.New("not found")
	ErrInvalidInput               = errors.New("invalid input")
	ErrConflict                   = errors.New("conflict")
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
)
