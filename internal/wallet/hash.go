package wallet

import (
	"fmt"
	"unicode/utf16"
)

// seedWidth is the minimum width of a hashed seed in hex digits.
const seedWidth = 16

// HashString folds input into a 32-bit signed rolling hash (acc*31 + unit)
// and renders its absolute value as zero-padded lowercase hex.
//
// The fold runs over UTF-16 code units so that strings containing runes
// outside the BMP hash the same way a browser's charCodeAt loop does.
func HashString(input string) string {
	var acc int32
	for _, unit := range utf16.Encode([]rune(input)) {
		// int32 arithmetic wraps on overflow.
		acc = acc*31 + int32(unit)
	}

	// Widen before negating: |MinInt32| does not fit in an int32.
	abs := int64(acc)
	if abs < 0 {
		abs = -abs
	}

	return fmt.Sprintf("%0*x", seedWidth, abs)
}
