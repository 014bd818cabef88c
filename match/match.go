// Package match selects the best provider search candidate for a query
// title by fuzzy string similarity. Low-confidence matches are rejected
// rather than returned, so a wrong same-named result is never picked
// silently.
package match

import fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

// Threshold is the minimum similarity score (0-100) a candidate must reach
// to be accepted.
const Threshold = 90

// Candidate is one provider search result up for selection.
type Candidate struct {
	ID    int
	Title string
}

// Best returns the candidate whose title scores highest against the query,
// along with its score. ok is false when no candidate reaches Threshold.
func Best(query string, candidates []Candidate) (best Candidate, score int, ok bool) {
	for _, c := range candidates {
		if c.Title == "" {
			continue
		}
		s := fuzzy.WRatio(query, c.Title)
		if s > score {
			best, score = c, s
		}
	}
	return best, score, score >= Threshold
}
