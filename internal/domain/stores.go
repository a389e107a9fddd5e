package domain

import (
	"context"
	"time"
)

// UserStore persists accounts and owns password hashing and verification.
// Implementations must make duplicate detection atomic under concurrent
// signups with the same email.
type UserStore interface {
	// Add hashes the password and persists the record.
	// Fails with ErrAlreadyExists if the email is already registered.
	Add(ctx context.Context, email Email, password Password, requires2FA bool) error
	// Get returns the stored record or ErrNotFound.
	Get(ctx context.Context, email Email) (*User, error)
	// Validate fails with ErrNotFound for an unknown account and
	// ErrInvalidCredentials when the hash comparison fails. Any other
	// failure is infrastructure trouble, never a credential mismatch.
	Validate(ctx context.Context, email Email, password Password) error
}

// BannedTokenStore tracks revoked session tokens. An entry never needs to
// outlive the token's own remaining validity window, which bounds growth to
// tokens revoked within one window.
type BannedTokenStore interface {
	Store(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// TwoFACodeStore holds at most one pending challenge per email.
type TwoFACodeStore interface {
	// Add unconditionally overwrites any existing challenge for the email;
	// only the most recently issued challenge is ever valid.
	Add(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error
	// Get returns the pending pair or ErrNotFound.
	Get(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
	// Remove deletes the entry; called exactly once after a successful
	// verification to enforce single use.
	Remove(ctx context.Context, email Email) error
}
