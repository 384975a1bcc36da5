package ratings

import "strings"

// fuzzyThreshold is the minimum edit-distance similarity for a search term
// to count as matching a stored name term.
const fuzzyThreshold = 0.7

// Candidate is a successful local match.
type Candidate struct {
	Name   string
	Rating PlayerRating
	Exact  bool
}

// Match resolves a display name against the store: a case-sensitive exact
// lookup first (no normalization involved), then a term-wise fuzzy scan.
//
// On the fuzzy path the input splits into whitespace-separated terms; an
// entry qualifies when every search term hits at least one term of the
// stored name by normalized substring containment (either direction) or
// edit-distance similarity above the threshold. The first qualifying entry
// in insertion order wins — there is no global best-match ranking.
func Match(store *Store, name string) *Candidate {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	if rating, ok := store.Get(trimmed); ok {
		return &Candidate{Name: trimmed, Rating: rating, Exact: true}
	}

	searchTerms := strings.Fields(Normalize(trimmed))
	if len(searchTerms) == 0 {
		return nil
	}

	for _, stored := range store.Names() {
		dbTerms := strings.Fields(Normalize(stored))
		if matchesAllTerms(searchTerms, dbTerms) {
			rating, _ := store.Get(stored)
			return &Candidate{Name: stored, Rating: rating}
		}
	}
	return nil
}

func matchesAllTerms(searchTerms, dbTerms []string) bool {
	for _, term := range searchTerms {
		if !matchesAnyTerm(term, dbTerms) {
			return false
		}
	}
	return true
}

func matchesAnyTerm(term string, dbTerms []string) bool {
	for _, dbTerm := range dbTerms {
		if strings.Contains(dbTerm, term) || strings.Contains(term, dbTerm) {
			return true
		}
		if Similarity(term, dbTerm) > fuzzyThreshold {
			return true
		}
	}
	return false
}
