// Package nameutil validates and cleans the human-facing labels of menu records.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateLabel checks that label is usable as a menu entry's display text:
// non-blank, valid UTF-8 and free of control characters. It does not modify
// the input; run SanitizeLabel first to strip pasted junk.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("invalid label: label cannot be empty")
	}
	if !utf8.ValidString(label) {
		return fmt.Errorf("invalid label: contains invalid encoding")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid label: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeLabel drops control and zero-width characters, trims surrounding
// whitespace, and reports whether anything changed.
func SanitizeLabel(label string) (string, bool) {
	if label == "" {
		return label, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			return -1
		}
		return r
	}, label)
	cleaned = strings.TrimSpace(cleaned)
	return cleaned, cleaned != label
}
