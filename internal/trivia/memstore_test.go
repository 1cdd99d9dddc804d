package trivia

import (
	"context"
	"sort"
	"sync"
)

// memStore is an in-memory Store used by the package tests.
type memStore struct {
	mu         sync.Mutex
	categories []Category
	questions  map[int]Question
	nextID     int
	err        error
}

func newMemStore() *memStore {
	return &memStore{questions: map[int]Question{}, nextID: 1}
}

func seededStore() *memStore {
	s := newMemStore()
	s.categories = []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
	seed := []Question{
		{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
		{Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4},
		{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
		{Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4},
		{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
		{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4},
		{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
		{Question: "What actor did author Anne Rice first denounce?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
		{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
		{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
	}
	for _, q := range seed {
		_, _ = s.CreateQuestion(context.Background(), q)
	}
	return s
}

func (s *memStore) ListCategories(context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]Category(nil), s.categories...), nil
}

func (s *memStore) ListQuestions(context.Context) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(0), nil
}

func (s *memStore) ListQuestionsByCategory(_ context.Context, categoryID int) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(categoryID), nil
}

func (s *memStore) CreateQuestion(_ context.Context, q Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if len(s.categories) > 0 && !s.hasCategory(q.Category) {
		return 0, ErrInvalidCategory
	}
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = q
	return q.ID, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *memStore) hasCategory(id int) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *memStore) sorted(categoryID int) []Question {
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		if categoryID != 0 && q.Category != categoryID {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type recordingPublisher struct {
	mu      sync.Mutex
	created []int
	deleted []int
	err     error
}

func (p *recordingPublisher) QuestionCreated(_ context.Context, q Question) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, q.ID)
	return p.err
}

func (p *recordingPublisher) QuestionDeleted(_ context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return p.err
}
