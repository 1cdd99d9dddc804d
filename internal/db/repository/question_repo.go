package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/triviabank/trivia-api/internal/db/queries"
	"github.com/triviabank/trivia-api/internal/trivia"
)

const foreignKeyViolation = "23503"

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (int32, error)
	DeleteQuestion(ctx context.Context, id int32) (int32, error)
}

// QuestionRepository maps question rows to domain questions.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return toDomain(rows), nil
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	if !fitsInt32(categoryID) {
		return []trivia.Question{}, nil
	}
	rows, err := r.store.ListQuestionsByCategory(ctx, int32(categoryID))
	if err != nil {
		return nil, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}
	return toDomain(rows), nil
}

// Insert stores q and returns its generated id.
func (r *QuestionRepository) Insert(ctx context.Context, q trivia.Question) (int, error) {
	id, err := r.store.InsertQuestion(ctx, queries.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   int32(q.Category),
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, fmt.Errorf("insert question: category %d: %w", q.Category, trivia.ErrInvalidCategory)
		}
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return int(id), nil
}

// Delete removes a question, returning trivia.ErrNotFound when it does not exist.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	if !fitsInt32(id) {
		return trivia.ErrNotFound
	}
	if _, err := r.store.DeleteQuestion(ctx, int32(id)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.ErrNotFound
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

func toDomain(rows []queries.Question) []trivia.Question {
	out := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, trivia.Question{
			ID:         int(row.ID),
			Question:   row.Question,
			Answer:     row.Answer,
			Category:   int(row.Category),
			Difficulty: int(row.Difficulty),
		})
	}
	return out
}

func fitsInt32(n int) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}
