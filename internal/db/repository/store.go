package repository

import (
	"context"

	"github.com/triviabank/trivia-api/internal/trivia"
)

// Store adapts the repositories to trivia.Store.
type Store struct {
	Categories *CategoryRepository
	Questions  *QuestionRepository
}

var _ trivia.Store = (*Store)(nil)

func NewStore(categories *CategoryRepository, questions *QuestionRepository) *Store {
	return &Store{Categories: categories, Questions: questions}
}

func (s *Store) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	return s.Categories.List(ctx)
}

func (s *Store) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	return s.Questions.List(ctx)
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	return s.Questions.ListByCategory(ctx, categoryID)
}

func (s *Store) CreateQuestion(ctx context.Context, q trivia.Question) (int, error) {
	return s.Questions.Insert(ctx, q)
}

func (s *Store) DeleteQuestion(ctx context.Context, id int) error {
	return s.Questions.Delete(ctx, id)
}
