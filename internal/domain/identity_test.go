package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"uppercase hex", Identity(strings.Repeat("A1", 32)), true},
		{"lowercase hex", Identity(strings.Repeat("f0", 32)), true},
		{"mixed case", Identity(strings.Repeat("aB", 32)), true},
		{"empty", Identity(""), false},
		{"too short", Identity(strings.Repeat("A", 63)), false},
		{"too long", Identity(strings.Repeat("A", 65)), false},
		{"non hex rune", Identity(strings.Repeat("G", 64)), false},
		{"embedded space", Identity(strings.Repeat("A", 63) + " "), false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.id.Valid())
		})
	}
}

func TestIdentityEqualIgnoresCase(t *testing.T) {
	t.Parallel()

	lower := Identity(strings.Repeat("ab", 32))
	upper := Identity(strings.Repeat("AB", 32))

	assert.True(t, lower.Equal(upper))
	assert.True(t, upper.Equal(lower))
	assert.False(t, lower.Equal(Identity(strings.Repeat("AC", 32))))
}

func TestIdentityNormalized(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Identity(strings.Repeat("AB", 32)), Identity(strings.Repeat("ab", 32)).Normalized())
}
