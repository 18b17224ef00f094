// Package suggest holds the lookup tables behind search-query cleanup and
// "did you mean" expansion.
package suggest

import "strings"

// Filler words that carry no signal for a documentation search.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "can": true, "do": true, "does": true,
	"for": true, "from": true, "how": true, "i": true, "in": true,
	"is": true, "it": true, "my": true, "of": true, "on": true, "or": true,
	"that": true, "the": true, "to": true, "what": true, "when": true,
	"where": true, "why": true, "with": true, "you": true,
}

// Synonym table for common documentation vocabulary. Keys and values are
// lowercase single terms.
var synonyms = map[string][]string{
	"install":   {"setup", "installation"},
	"setup":     {"install", "configuration"},
	"config":    {"configuration", "settings"},
	"configure": {"configuration", "settings"},
	"auth":      {"authentication", "authorization"},
	"login":     {"authentication", "sign-in"},
	"error":     {"troubleshooting", "errors"},
	"bug":       {"troubleshooting", "known-issues"},
	"upgrade":   {"migration", "update"},
	"delete":    {"remove", "uninstall"},
	"api":       {"reference", "endpoints"},
	"cli":       {"command-line", "commands"},
	"docker":    {"container", "containers"},
	"deploy":    {"deployment", "production"},
	"start":     {"quickstart", "getting-started"},
}

// Normalize lowercases a query and drops stop words, keeping original word
// order. A query made entirely of stop words is returned lowercased rather
// than empty.
func Normalize(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopWords[f] {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return strings.Join(fields, " ")
	}
	return strings.Join(kept, " ")
}

// Expand proposes alternative queries for a search that came back empty:
// each term with a synonym produces one variant per synonym, capped so the
// caller never relays a wall of guesses.
func Expand(query string) []string {
	const maxSuggestions = 5

	terms := strings.Fields(Normalize(query))
	seen := map[string]bool{strings.Join(terms, " "): true}
	var out []string

	for i, term := range terms {
		for _, syn := range synonyms[term] {
			variant := make([]string, len(terms))
			copy(variant, terms)
			variant[i] = syn
			candidate := strings.Join(variant, " ")
			if !seen[candidate] {
				seen[candidate] = true
				out = append(out, candidate)
				if len(out) >= maxSuggestions {
					return out
				}
			}
		}
	}
	return out
}
