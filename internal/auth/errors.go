// Package auth implements the session lifecycle (authenticate,
// register, refresh) and the ownership-scoped access decisions shared
// by every resource handler. It performs no I/O of its own: persistence
// is reached through the CredentialStore contract and token
// cryptography lives in internal/utils.
package auth

import "errors"

// Sentinel errors forming the client-visible failure taxonomy.
// Handlers translate these into HTTP status codes; anything else that
// escapes the auth package is an unexpected server error.
var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when registration or supplier
	// creation collides with an existing account.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrWeakPassword is returned for passwords shorter than
	// MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 8 characters long")

	// ErrInvalidToken means the presented access token failed
	// signature verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRefreshToken means the refresh token did not match the
	// stored one, was expired, or its principal no longer exists.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrForbidden denies an operation on role or ownership grounds.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound hides the existence of a resource owned by another
	// principal from ownership-scoped reads.
	ErrNotFound = errors.New("not found")

	// ErrValidation rejects a malformed or incomplete payload.
	ErrValidation = errors.New("invalid request data")
)
