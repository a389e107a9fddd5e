package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePassword_Valid(t *testing.T) {
	p, err := ParsePassword("ThisIsaValidPassword")
	require.NoError(t, err)
	assert.Equal(t, "ThisIsaValidPassword", p.String())
}

func TestParsePassword_TooShort(t *testing.T) {
	for _, input := range []string{"", "e234", "1234567"} {
		_, err := ParsePassword(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

func TestParsePassword_ExactlyEight(t *testing.T) {
	_, err := ParsePassword("12345678")
	assert.NoError(t, err)
}
