package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{"default on zero", 0, DefaultLength},
		{"default on negative", -5, DefaultLength},
		{"explicit short", 6, 6},
		{"explicit long", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			require.NoError(t, err)
			assert.Len(t, got, tt.expected)
		})
	}
}

func TestGenerateAlphabet(t *testing.T) {
	got, err := Generate(200)
	require.NoError(t, err)

	for _, c := range got {
		assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 10000; i++ {
		got, err := Generate(DefaultLength)
		require.NoError(t, err)
		require.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixConn, DefaultLength)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, PrefixConn+"_"))
	assert.Len(t, got, len(PrefixConn)+1+DefaultLength)
}

func TestMustGenerateWithPrefix(t *testing.T) {
	got := MustGenerateWithPrefix(PrefixDevice, 8)
	assert.True(t, strings.HasPrefix(got, "dev_"))
}
