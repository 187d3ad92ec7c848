package model

import "errors"

var (
	// ErrNotFound is returned when an entity lookup fails or the caller
	// does not own the entity.
	ErrNotFound = errors.New("not found")
	// ErrQuotaExhausted is returned when a non-premium user has no daily
	// transform credits left.
	ErrQuotaExhausted = errors.New("daily transform quota exhausted")
	// ErrUpstream is returned for any external call failure or malformed
	// upstream response. Transport details never leak past the gateway.
	ErrUpstream = errors.New("upstream service failure")
	// ErrUnavailable is returned when an external service has no
	// credentials configured. A deployment error, not a request error.
	ErrUnavailable = errors.New("external service not configured")
)
