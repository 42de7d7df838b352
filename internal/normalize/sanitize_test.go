package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"colour codes", "\x1B[31mError:\x1B[0m disk full", "Error: disk full"},
		{"cursor codes", "\x1B[2K\x1B[1;1Hprogress", "progress"},
		{"bare reset", "\x1B[mdone", "done"},
		{"zero width", "a\u200Bb\u200Cc\u200Dd\uFEFFe", "abcde"},
		{"keeps other escapes", "\x1B]0;title\x07", "\x1B]0;title\x07"},
		{"keeps unicode marks", "✓ ok ✗ bad", "✓ ok ✗ bad"},
		{"zero width inside sequence", "\x1B\u200B[31mred", "red"},
		{"nested sequence", "\x1B[\x1B[0m31mred", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"\x1B[31mError:\x1B[0m disk full",
		"\x1B\u200B[31m",
		"\x1B[\x1B[\x1B[0m1m2m",
		"\uFEFF\u200B\x1B[0;1;32m✓ Vault unlocked\x1B[0m\u200D",
		"\x1B[", "[31m\x1B",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "héllo", Decode([]byte("héllo")))
	assert.Equal(t, "", Decode(nil))
	assert.Equal(t, "a\uFFFDb", Decode([]byte("a\xffb")))
}
