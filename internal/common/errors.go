// Package common defines shared constants and sentinel errors used across
// the ratings backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Identity collisions, keyed by the offending field.
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")

	// Validation errors.
	ErrIncompleteLocation = errors.New("incomplete location")

	// Rating uniqueness violation for an (item, user) pair.
	ErrDuplicateRating = errors.New("duplicate rating")

	// Ownership / sharing violations.
	ErrForbidden  = errors.New("forbidden")
	ErrItemShared = errors.New("item is shared")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
