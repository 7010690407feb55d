package application

import "errors"

// Closed set of business failure kinds surfaced by the application services.
// Handlers map each one to an HTTP status; nothing here is retried internally.
var (
	// ErrDuplicateAccount rejects registration with an email that is
	// already taken (case-sensitive match on the stored identity).
	ErrDuplicateAccount = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound means a validated token points at an account that no
	// longer resolves; the request must fail and the client re-authenticate.
	ErrUserNotFound = errors.New("user not found")

	// ErrEntryNotFound means no transaction exists with the requested id,
	// regardless of who owns it.
	ErrEntryNotFound = errors.New("transaction not found")

	// ErrUnauthorized means the transaction exists but belongs to a
	// different account than the caller.
	ErrUnauthorized = errors.New("unauthorized access to transaction")
)
