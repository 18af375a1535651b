package vt

import "github.com/unilibs/uniwidth"

// VS16 (variation selector-16) forces emoji presentation (width 2).
const vs16 = '️'

// VS15 forces text presentation (narrow).
const vs15 = '︎'

// ZWJ joins emoji sequences; zero width on its own.
const zwj = '‍'

// combining keycap marker, e.g. "1️⃣".
const keycap = '⃣'

// GraphemeWidth computes the display width of one grapheme cluster per
// §3/§4.2: 0 for combining marks, variation selectors and ZWJ, 2 for
// East-Asian Wide/Fullwidth, SMP emoji, default-emoji-presentation BMP
// runes, and VS16/keycap-terminated clusters, 1 otherwise.
func GraphemeWidth(grapheme string) int {
	runes := []rune(grapheme)
	if len(runes) == 0 {
		return 0
	}

	first := runes[0]
	if isZeroWidthRune(first) {
		return 0
	}

	last := runes[len(runes)-1]
	if last == vs16 || last == keycap {
		return 2
	}

	w := uniwidth.RuneWidth(first)
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

func isZeroWidthRune(r rune) bool {
	switch {
	case r == zwj:
		return true
	case r == vs15 || r == vs16:
		return true
	case r >= 0x0300 && r <= 0x036F: // combining diacritical marks
		return true
	case r >= 0x1AB0 && r <= 0x1AFF: // combining diacritical marks extended
		return true
	case r >= 0x1DC0 && r <= 0x1DFF: // combining diacritical marks supplement
		return true
	case r >= 0x20D0 && r <= 0x20FF: // combining diacritical marks for symbols
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r == 0x200B || r == 0x200C: // zero width space / non-joiner
		return true
	default:
		return false
	}
}

// StringWidth sums grapheme widths across a plain (non-clustered) string,
// treating each rune as its own cluster. Used for diagnostics only; the
// tokenizer also decodes text rune by rune and forms no grapheme clusters.
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += GraphemeWidth(string(r))
	}
	return total
}
