package trivia

import "strings"

// MatchesTerm reports whether term occurs in text, ignoring case.
// Surrounding whitespace in term is ignored, so a blank term matches everything.
func MatchesTerm(text, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// Search filters questions by MatchesTerm, preserving input order.
func Search(questions []Question, term string) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		if MatchesTerm(q.Question, term) {
			out = append(out, q)
		}
	}
	return out
}
