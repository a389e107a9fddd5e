package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// LoginAttemptID identifies one second-factor challenge. Fresh per challenge.
type LoginAttemptID struct {
	value string
}

// NewLoginAttemptID generates a random version 4 UUID.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

// ParseLoginAttemptID accepts any syntactically valid UUID from untrusted input.
func ParseLoginAttemptID(s string) (LoginAttemptID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return LoginAttemptID{}, fmt.Errorf("invalid login attempt id: %w", ErrInvalidInput)
	}
	return LoginAttemptID{value: s}, nil
}

func (id LoginAttemptID) String() string {
	return id.value
}

// TwoFACode is the 6-digit code delivered out of band. Single use.
type TwoFACode struct {
	value string
}

// NewTwoFACode generates a random 6-digit code.
func NewTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return TwoFACode{}, fmt.Errorf("generate 2FA code: %w", err)
	}
	return TwoFACode{value: fmt.Sprintf("%06d", n.Int64())}, nil
}

// ParseTwoFACode requires exactly 6 ASCII digits.
func ParseTwoFACode(s string) (TwoFACode, error) {
	if len(s) != 6 {
		return TwoFACode{}, fmt.Errorf("code must be 6 digits: %w", ErrInvalidInput)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return TwoFACode{}, fmt.Errorf("code must be 6 digits: %w", ErrInvalidInput)
		}
	}
	return TwoFACode{value: s}, nil
}

func (c TwoFACode) String() string {
	return c.value
}
