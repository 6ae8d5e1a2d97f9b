package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "ada lovelace", Key("Ada Lovelace"))
	assert.Equal(t, "ada lovelace", Key("  ADA   lovelace "))
	assert.Equal(t, "", Key("   "))
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"Ada Augusta King Lovelace", "AL"},
		{"ada", "AD"},
		{"x", "X"},
		{"", "??"},
		{"   ", "??"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.name), "name %q", tt.name)
	}
}

func TestColorIsStableAndCaseInsensitive(t *testing.T) {
	assert.Equal(t, Color("Ada Lovelace"), Color("Ada Lovelace"))
	assert.Equal(t, Color("Ada Lovelace"), Color("ada lovelace"))
	assert.Contains(t, palette, Color("anyone"))
}

func TestColorWeighsCharactersNotBytes(t *testing.T) {
	// "josé": 1*'j' + 2*'o' + 3*'s' + 4*'é' = 106+222+345+932 = 1605,
	// 1605 mod 8 = 5. Byte-offset weighting would skip an index after
	// the two-byte rune and land elsewhere.
	assert.Equal(t, palette[5], Color("José"))
}
