// Package rank tokenizes queries and product names and scores how well a
// name matches a query. Scoring is a tuple compared slot by slot, so ties in
// one factor fall through to the next.
package rank

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// stopwords are dropped from query tokens. Includes marketing filler that
// appears in pasted deal titles but carries no product signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "by": {},
	"deal": {}, "deals": {}, "for": {}, "from": {}, "in": {},
	"of": {}, "on": {}, "or": {}, "sale": {}, "the": {},
	"to": {}, "with": {},
}

// Tokenize lowercases text and returns its maximal alphanumeric runs.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// QueryTokens returns the meaningful tokens of a search query: single
// characters and stopwords are dropped. An empty result means the query
// carries no signal and downstream filters admit everything.
func QueryTokens(query string) []string {
	var tokens []string
	for _, tok := range Tokenize(query) {
		if len(tok) < 2 {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// IsRelevantName reports whether a product name shares at least one token
// with the query tokens. Empty query tokens admit every name.
func IsRelevantName(name string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	nameTokens := tokenSet(name)
	if len(nameTokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if _, ok := nameTokens[tok]; ok {
			return true
		}
	}
	return false
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}
