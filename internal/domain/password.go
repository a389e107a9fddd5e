package domain

import "fmt"

const minPasswordLength = 8

// Password is a plaintext submission wrapper. It exists only between request
// parsing and hashing or verification; it is never persisted.
type Password struct {
	value string
}

// ParsePassword enforces the minimum length before any store interaction.
func ParsePassword(s string) (Password, error) {
	if len(s) < minPasswordLength {
		return Password{}, fmt.Errorf("password needs at least %d characters: %w", minPasswordLength, ErrInvalidInput)
	}
	return Password{value: s}, nil
}

func (p Password) String() string {
	return p.value
}
