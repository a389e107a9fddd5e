package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// Email is a validated address used as the unique account key.
// The zero value is invalid; construct via ParseEmail.
type Email struct {
	value string
}

// ParseEmail validates the RFC shape (local@domain) of untrusted input.
func ParseEmail(s string) (Email, error) {
	if err := emailValidator.Var(s, "required,email"); err != nil {
		return Email{}, fmt.Errorf("%q is not a valid email: %w", s, ErrInvalidInput)
	}
	return Email{value: s}, nil
}

func (e Email) String() string {
	return e.value
}
