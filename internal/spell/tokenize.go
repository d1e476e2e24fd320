package spell

import (
	"regexp"
	"strings"
)

// nonWord matches every rune that is neither a word character nor
// whitespace.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]+`)

// Tokenize strips punctuation, lowercases and splits on whitespace.
// Characters are removed rather than replaced, so "CAS-123!" becomes the
// single token "cas123". Tokenize is idempotent: re-tokenizing the joined
// tokens gives the same tokens.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(nonWord.ReplaceAllString(text, "")))
}
