package sigstream

import "errors"

var (
	// ErrInvalidSignal is returned when the requested signal has no slot on
	// this platform. No OS-level registration is attempted.
	ErrInvalidSignal = errors.New("sigstream: invalid signal")

	// ErrRegistrationFailed wraps an OS rejection of handler installation.
	// Failure is not cached: a later Subscribe for the same signal retries.
	ErrRegistrationFailed = errors.New("sigstream: signal handler registration failed")

	// ErrClosed is returned by Receive after the subscription is closed.
	ErrClosed = errors.New("sigstream: subscription closed")
)
