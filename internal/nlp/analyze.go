package nlp

import "strings"

// SubstanceNames builds the set of substance names to keep out of the
// frequency tables: every substance plus every ';'-separated synonym,
// trimmed and lowercased. Blank entries are ignored.
func SubstanceNames(substances, synonyms []string) Set {
	set := NewSet()
	add := func(s string) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set.Add(s)
		}
	}
	for _, s := range substances {
		add(s)
	}
	for _, syn := range synonyms {
		for _, s := range strings.Split(syn, ";") {
			add(s)
		}
	}
	return set
}

// Analysis aggregates fields and term frequencies over a column of product
// descriptions.
type Analysis struct {
	Companies map[string]struct{}
	CAS       map[string]struct{}
	Skipped   int
	Words     *Counter
	Phrases   *Counter
	Extracted []Fields
}

// UniqueCompanies returns the number of distinct company values.
func (a *Analysis) UniqueCompanies() int { return len(a.Companies) }

// UniqueCAS returns the number of distinct CAS values.
func (a *Analysis) UniqueCAS() int { return len(a.CAS) }

// Analyzer mines product descriptions for key terms.
type Analyzer struct {
	// Exclude holds words left out of the token stream: stopwords, "cas"
	// and substance names.
	Exclude Set

	// PhraseLength is the n-gram size for phrases. Zero means bigrams.
	PhraseLength int
}

// NewAnalyzer excludes English stopwords, "cas" and the given substance
// names.
func NewAnalyzer(substances Set) *Analyzer {
	return &Analyzer{Exclude: Stopwords("cas").Union(substances), PhraseLength: 2}
}

// Terms returns the tokens of text after Clean and exclusion.
func (a *Analyzer) Terms(text string) []string {
	return Tokens(Clean(text), a.Exclude)
}

// Analyze processes one cell per entry. Blank cells count as skipped.
// Words and phrases come only from the Product Description field of each
// cell.
func (a *Analyzer) Analyze(cells []string) *Analysis {
	n := a.PhraseLength
	if n < 1 {
		n = 2
	}

	res := &Analysis{
		Companies: make(map[string]struct{}),
		CAS:       make(map[string]struct{}),
		Words:     NewCounter(),
		Phrases:   NewCounter(),
	}

	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			res.Skipped++
			continue
		}

		fields := Extract(cell)
		res.Extracted = append(res.Extracted, fields)

		if desc, ok := fields[FieldProductDescription]; ok {
			terms := a.Terms(desc)
			res.Words.Add(terms...)
			res.Phrases.Add(NGrams(terms, n)...)
		}
		if company, ok := fields[FieldCompany]; ok {
			res.Companies[company] = struct{}{}
		}
		if cas, ok := fields[FieldCAS]; ok {
			res.CAS[cas] = struct{}{}
		}
	}
	return res
}
