package spell

import (
	"bufio"
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/f1monkey/spellchecker"
)

// alphabet is the symbol set the spellchecker indexes. Other runes are
// stored but take no part in the index.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// embeddedFrequencies is an English frequency list, one "word count" pair
// per line, most frequent first.
//
//go:embed data/en.txt.gz
var embeddedFrequencies []byte

// Checker flags tokens that are not in its dictionary.
type Checker struct {
	sc    *spellchecker.Spellchecker
	count int
}

// NewChecker loads a dictionary and adds the custom words.
//
// An empty path uses the embedded English frequency list. An explicit path
// replaces it and must be readable.
func NewChecker(path string, custom []string) (*Checker, error) {
	sc, err := spellchecker.New(alphabet, spellchecker.WithMaxErrors(2))
	if err != nil {
		return nil, fmt.Errorf("failed to create spellchecker: %w", err)
	}
	c := &Checker{sc: sc}

	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	} else if err := c.loadEmbedded(); err != nil {
		return nil, err
	}

	c.Add(custom...)
	return c, nil
}

func (c *Checker) loadEmbedded() error {
	zr, err := gzip.NewReader(bytes.NewReader(embeddedFrequencies))
	if err != nil {
		return fmt.Errorf("failed to open embedded dictionary: %w", err)
	}
	defer zr.Close()
	return c.Load(zr)
}

func (c *Checker) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}

// Load reads one word per line. Anything after the first field (such as a
// frequency count) is ignored, as are blank lines.
func (c *Checker) Load(r io.Reader) error {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		words = append(words, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}
	c.Add(words...)
	return nil
}

// Add marks words as known. Words are normalized with Tokenize, so
// "O'Neil" is stored as "oneil".
func (c *Checker) Add(words ...string) {
	var fresh []string
	seen := make(map[string]struct{})
	for _, w := range words {
		for _, tok := range Tokenize(w) {
			if _, dup := seen[tok]; dup || c.sc.IsCorrect(tok) {
				continue
			}
			seen[tok] = struct{}{}
			fresh = append(fresh, tok)
		}
	}
	if len(fresh) == 0 {
		return
	}
	c.sc.Add(fresh...)
	c.count += len(fresh)
}

// Len reports the number of known words.
func (c *Checker) Len() int { return c.count }

// Known reports whether a token is in the dictionary. Purely numeric tokens
// are always known.
func (c *Checker) Known(token string) bool {
	if isNumeric(token) {
		return true
	}
	return c.sc.IsCorrect(token)
}

// Unknown returns the distinct unknown tokens in first-seen order.
func (c *Checker) Unknown(tokens []string) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if !c.Known(tok) {
			unknown = append(unknown, tok)
		}
	}
	return unknown
}

// Check tokenizes text and returns its unknown tokens.
func (c *Checker) Check(text string) []string {
	return c.Unknown(Tokenize(text))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
