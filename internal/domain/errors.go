package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without
// mistaking infrastructure failures for credential mismatches.
var (
	// ErrInvalidInput covers malformed emails, short passwords, and
	// badly shaped attempt ids or codes. Rejected before any store is touched.
	ErrInvalidInput = errors.New("invalid input")

	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")

	// ErrInvalidCredentials is a password hash mismatch for a known account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIncorrectCredentials is what callers see for any authentication
	// failure (unknown account, wrong password, wrong 2FA pair).
	ErrIncorrectCredentials = errors.New("incorrect credentials")

	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid or expired token")
)
