package kiosk

import "errors"

var (
	// ErrAuthenticationFailed means no single active employee holds the PIN,
	// or the identified employee stopped being active before marking.
	ErrAuthenticationFailed = errors.New("pin not recognised")
	// ErrInvalidPinRotation means the new PIN is malformed, unchanged or taken.
	ErrInvalidPinRotation = errors.New("new pin must be 6 digits and differ from the current one")
	// ErrPersistenceUnavailable means the store rejected a write. The
	// operation may be retried.
	ErrPersistenceUnavailable = errors.New("attendance store unavailable, please retry")

	ErrMarkInFlight      = errors.New("a mark is already being recorded")
	ErrInvalidTransition = errors.New("action not allowed in the current state")
	ErrInvalidDigit      = errors.New("input must be a single digit")
	ErrSessionNotFound   = errors.New("kiosk session not found")
	ErrSessionClosed     = errors.New("kiosk session is closed")
)
