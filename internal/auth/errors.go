package auth

import "errors"

// Every rejection the core can produce. All are terminal for the call; the
// transport layer maps them to status codes and never retries.
var (
	// ErrNotFound is returned by credential stores when a username does not
	// resolve. It never escapes the core: Authenticate collapses it into
	// ErrInvalidCredentials, ValidateToken into ErrUnknownSubject.
	ErrNotFound = errors.New("auth: not found")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	// Callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	ErrMalformedToken   = errors.New("auth: malformed token")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrExpired          = errors.New("auth: token expired")
	ErrMissingSubject   = errors.New("auth: token subject missing")
	ErrUnknownSubject   = errors.New("auth: unknown token subject")

	// ErrIdentityDisabled fires only after the secret or signature has been
	// verified, so it leaks nothing about why a login would otherwise fail.
	ErrIdentityDisabled = errors.New("auth: identity disabled")

	ErrForbidden = errors.New("auth: permission denied")
)
