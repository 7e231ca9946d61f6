// Package common defines shared sentinel errors used across the QuackNote
// backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository-level errors
	ErrorNotFound = errors.New("not found")

	// service-level errors (generic flow control)
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// request validation errors
	ErrorValidation = errors.New("validation error")
)
