package repository

import (
	"context"
	"fmt"

	"github.com/triviabank/trivia-api/internal/db/queries"
	"github.com/triviabank/trivia-api/internal/trivia"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
}

// CategoryRepository reads the seeded category table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]trivia.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, trivia.Category{ID: int(row.ID), Type: row.Type})
	}
	return out, nil
}
