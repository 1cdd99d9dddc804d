package trivia

import "math/rand/v2"

// Rand is the randomness source used to draw quiz questions.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// CandidatePool returns the questions eligible for a quiz draw: those in categoryID
// (any category when categoryID is 0) whose id is not in previous.
func CandidatePool(questions []Question, categoryID int, previous []int) []Question {
	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	pool := make([]Question, 0, len(questions))
	for _, q := range questions {
		if categoryID != 0 && q.Category != categoryID {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// Draw picks one question uniformly from pool. It returns false when pool is empty.
func Draw(pool []Question, rnd Rand) (Question, bool) {
	if len(pool) == 0 {
		return Question{}, false
	}
	return pool[rnd.IntN(len(pool))], true
}
