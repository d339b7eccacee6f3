package auth

import "errors"

// Authentication error taxonomy. Handlers map these onto HTTP statuses;
// authorization failures on pages are redirects, never errors.
var (
	// ErrInvalidInput is returned when either credential field is missing.
	ErrInvalidInput = errors.New("please provide both email and password")

	// ErrInvalidCredentials covers an unknown email, an account with no
	// password set, and a password mismatch. Callers get one message for
	// all three so the response does not leak which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLinkingFailure is returned when creating the local record for a
	// third-party identity fails.
	ErrLinkingFailure = errors.New("error while creating user")

	// ErrUnauthorizedProvider is returned for a sign-in attempt from a
	// provider that is not configured.
	ErrUnauthorizedProvider = errors.New("unrecognized sign-in provider")
)
