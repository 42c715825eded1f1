package wallet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskRune replaces hidden characters on screen.
const MaskRune = '•'

// MaskPhrase hides every non-space character, keeping word boundaries visible.
func MaskPhrase(phrase string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		return MaskRune
	}, phrase)
}

// MaskKey hides a key entirely, keeping only its length.
func MaskKey(key string) string {
	return strings.Repeat(string(MaskRune), utf8.RuneCountInString(key))
}
