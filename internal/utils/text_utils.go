package utils

import (
	"strings"
	"unicode/utf8"
)

// StripTrailingNewlines removes any trailing newline or carriage return
// characters. Formatted output is written without a trailing newline
// regardless of the formatter that produced it.
func StripTrailingNewlines(text string) string {
	return strings.TrimRight(text, "\r\n")
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Replace invalid UTF-8 sequences with the Unicode replacement character
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	return string(result)
}
