// Package extract recognizes candidate token contract addresses in free-form
// chat text. One grammar per chain family; matching is line-oriented so an
// address on its own line is recognized mid-message.
package extract

import (
	"regexp"

	"token-mention-bot/internal/domain"
)

// Address grammars, compiled once at process startup.
//
// A candidate must be preceded by start-of-line, whitespace, or a known
// share-link URL prefix. GMGN share links may carry a short pool id segment
// before the mint (sol/token/<pool>_<mint>).
var (
	solanaPattern = regexp.MustCompile(
		`(?m)(?:https://gmgn\.ai/sol/token/(?:[a-zA-Z0-9]{4,10}_)?|^|\s)([1-9A-HJ-NP-Za-km-z]{32,44})`,
	)
	evmPattern = regexp.MustCompile(
		`(?m)(?:https://gmgn\.ai/(?:bsc|base)/token/|^|\s)(0x[0-9a-fA-F]{40})`,
	)
)

// Extractor pattern-matches raw text against per-family address grammars.
type Extractor struct {
	patterns map[domain.ChainFamily]*regexp.Regexp
}

// New creates an Extractor over the precompiled grammars.
func New() *Extractor {
	return &Extractor{
		patterns: map[domain.ChainFamily]*regexp.Regexp{
			domain.FamilySolana: solanaPattern,
			domain.FamilyEVM:    evmPattern,
		},
	}
}

// Extract returns all distinct candidate addresses for the family, in order
// of first appearance. Duplicates within the same text are removed.
func (e *Extractor) Extract(text string, family domain.ChainFamily) []string {
	pattern, ok := e.patterns[family]
	if !ok {
		return nil
	}

	var (
		addrs []string
		seen  = make(map[string]bool)
	)
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if !boundedAt(text, end) {
			// Trailing alphanumeric means a longer run the grammar does
			// not cover; a partial span is not a candidate.
			continue
		}
		addr := text[start:end]
		if seen[addr] {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, addr)
	}
	return addrs
}

// ExtractAll runs every family grammar over text, Solana first, and tags
// each candidate with its family.
func (e *Extractor) ExtractAll(text string) []domain.CandidateMention {
	var out []domain.CandidateMention
	for _, family := range []domain.ChainFamily{domain.FamilySolana, domain.FamilyEVM} {
		for _, addr := range e.Extract(text, family) {
			out = append(out, domain.CandidateMention{Address: addr, Family: family})
		}
	}
	return out
}

// boundedAt reports whether position end is a valid right boundary:
// end-of-text or a non-alphanumeric byte.
func boundedAt(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	c := text[end]
	return !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}
