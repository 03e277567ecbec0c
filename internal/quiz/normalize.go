package quiz

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fullWidthOffset is the distance between a full-width ASCII variant
// (U+FF01..U+FF5E) and its half-width counterpart.
const fullWidthOffset = 0xFEE0

// Normalize canonicalizes an answer for comparison.
//
// Rules, in order:
//   - leading and trailing whitespace is trimmed
//   - letters are lowercased without full case folding, so "ß" stays "ß"
//   - all whitespace is removed, including the ideographic space U+3000
//   - full-width letters and digits are mapped to half-width
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Lower(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if isFullWidthAlnum(r) {
			return r - fullWidthOffset
		}
		return r
	}, s)
}

// Matches reports whether entered is equivalent to the canonical answer.
func Matches(entered, canonical string) bool {
	return Normalize(entered) == Normalize(canonical)
}

func isFullWidthAlnum(r rune) bool {
	switch {
	case r >= 'ａ' && r <= 'ｚ':
		return true
	case r >= 'Ａ' && r <= 'Ｚ':
		return true
	case r >= '０' && r <= '９':
		return true
	}
	return false
}
