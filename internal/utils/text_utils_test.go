package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTrailingNewlines(t *testing.T) {
	assert.Equal(t, "hello", StripTrailingNewlines("hello\n"))
	assert.Equal(t, "hello", StripTrailingNewlines("hello\r\n\r\n"))
	assert.Equal(t, "hello", StripTrailingNewlines("hello"))
	assert.Equal(t, "a\nb", StripTrailingNewlines("a\nb\n"))
	assert.Equal(t, "", StripTrailingNewlines("\n\n"))
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "plain text", SanitizeUTF8("plain text"))
	assert.Equal(t, "héllo", SanitizeUTF8("héllo"))

	// Invalid byte sequences are dropped
	assert.Equal(t, "ab", SanitizeUTF8("a\xffb"))
}
