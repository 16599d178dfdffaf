package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a", "***"},
		{"abc", "***"},
		{"abcd", "abcd***"},
		{"secret123", "secr***"},
		{"abcdefghijkl", "abcd***"},
		{"abcdefghijklm", "abcd***jklm"},
		{"1234567890abcdefghij", "1234***ghij"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Mask(tt.input), "input: %q", tt.input)
	}
}
