package nlp

import (
	"strings"
	"unicode"
)

// Tokens lowercases text, splits it into words and keeps the purely
// alphabetic ones not in exclude. Punctuation attached to a word ("end.")
// is trimmed first; words with inner digits or symbols ("abc123", "don't")
// are dropped.
func Tokens(text string, exclude Set) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		w := strings.TrimFunc(f, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
		if w == "" || !isAlpha(w) || exclude.Has(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NGrams returns the consecutive n-token windows of tokens, each joined
// with a single space. n < 1 or fewer than n tokens gives nil.
func NGrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}
