package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP handler maps them
// to response status codes; callers match with [errors.Is].
var (
	// ErrInvalidJobID is returned when an operation receives an empty or
	// malformed job identifier.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrInvalidErrorRate is returned when a creation request carries an
	// error rate outside [0, 1].
	ErrInvalidErrorRate = errors.New("error rate must be in [0, 1]")

	// ErrAuthDisabled is returned by the token endpoint when the server runs
	// without authentication configured.
	ErrAuthDisabled = errors.New("authentication is not configured")

	// ErrWrongAPIKey is returned when the presented API key does not match
	// the configured one.
	ErrWrongAPIKey = errors.New("wrong api key")

	// ErrTokenIsExpired is returned when a presented bearer token has passed
	// its expiry claim.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrTokenIsInvalid is returned when a presented bearer token fails
	// signature or claim validation.
	ErrTokenIsInvalid = errors.New("token is invalid")
)
