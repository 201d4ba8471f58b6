// Package common defines shared constants and sentinel errors used across
// the Pentalign backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorUsernameTaken = errors.New("username already taken")
	ErrorEmailTaken    = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Configuration errors (fatal at startup).
	ErrMissingSecret = errors.New("signing secret is not configured")
	ErrWeakSecret    = errors.New("signing secret is too short for HS256")

	// Access-token errors. Signature and expiry are independent failure
	// axes and must stay distinguishable via errors.Is.
	ErrEmptySubject   = errors.New("empty token subject")
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")

	// Refresh-token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
