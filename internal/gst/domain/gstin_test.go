package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		gstin string
		valid bool
	}{
		{"27ABCDE1234F1Z5", true},
		{"29AAACI9260R1Z2", true},
		{"07AABCU9603R1ZM", true},
		{"", false},
		{"27ABCDE1234F1Z", false},   // too short
		{"27ABCDE1234F1Z55", false}, // too long
		{"27abcde1234f1z5", false},  // lowercase
		{"27ABCDE1234F0Z5", false},  // entity number 0 not allowed
		{"27ABCDE1234F1X5", false},  // missing Z marker
		{"2XABCDE1234F1Z5", false},  // non-numeric state prefix
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateGSTIN(tt.gstin), "gstin %q", tt.gstin)
	}
}

func TestStateFromGSTIN(t *testing.T) {
	state, err := StateFromGSTIN("29AAACI9260R1Z2")
	require.NoError(t, err)
	assert.Equal(t, "29", state)
}

func TestStateFromGSTIN_Invalid(t *testing.T) {
	_, err := StateFromGSTIN("bogus")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "gstin", vErr.Field)
	assert.Equal(t, "bogus", vErr.Value)
}
