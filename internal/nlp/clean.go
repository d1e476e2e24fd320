package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonLetter   = regexp.MustCompile(`[^a-zA-Z\s]+`)
	inlineSpace = regexp.MustCompile(`[ \t\f\v]+`)
)

// asciiFold decomposes accented characters so their base letter survives
// the non-ASCII filter ("café" becomes "cafe").
func asciiFold(text string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		return ""
	}
	return out
}

// Clean reduces text to ASCII letters separated by single spaces. Digits,
// punctuation and non-Latin scripts are dropped.
func Clean(text string) string {
	return strings.Join(strings.Fields(nonLetter.ReplaceAllString(asciiFold(text), "")), " ")
}

// Normalize folds text to ASCII like Clean but keeps digits, punctuation and
// line breaks, collapsing runs of spaces within each line. Field extraction
// runs on normalized text so CAS numbers and one-field-per-line layouts
// survive.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(asciiFold(text), "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(inlineSpace.ReplaceAllString(l, " "))
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
