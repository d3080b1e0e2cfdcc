package clusterviz

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeCell performs Unicode normalization on a raw cell, strips a
// byte-order mark and trims surrounding whitespace.
func NormalizeCell(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimPrefix(normed, "\ufeff")
	normed = strings.TrimSpace(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}
