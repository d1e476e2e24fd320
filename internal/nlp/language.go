package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// SplitLanguages separates Chinese text from everything else. Full-width
// forms are folded first, so "ＣＡＳ" lands in the Latin part as "CAS".
// Han characters and CJK punctuation go to han; the rest goes to latin.
// Each part keeps its runs in order, joined by single spaces.
func SplitLanguages(text string) (han, latin string) {
	folded := width.Fold.String(text)

	var hb, lb strings.Builder
	for _, r := range folded {
		if isHan(r) {
			hb.WriteRune(r)
			lb.WriteRune(' ')
		} else {
			lb.WriteRune(r)
			hb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(hb.String()), " "), strings.Join(strings.Fields(lb.String()), " ")
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK symbols and punctuation
		(r >= 0xFF00 && r <= 0xFFEF && !unicode.IsLetter(r) && !unicode.IsDigit(r))
}
