package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listCategories = `
SELECT id, type
FROM categories
ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Category, error) {
		var c Category
		err := row.Scan(&c.ID, &c.Type)
		return c, err
	})
}

const listQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id
`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (int32, error) {
	var id int32
	err := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	).Scan(&id)
	return id, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1
RETURNING id
`

// DeleteQuestion returns pgx.ErrNoRows when no row matched.
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int32, error) {
	var deleted int32
	err := q.db.QueryRow(ctx, deleteQuestion, id).Scan(&deleted)
	return deleted, err
}

func scanQuestion(row pgx.CollectableRow) (Question, error) {
	var i Question
	err := row.Scan(
		&i.ID,
		&i.Question,
		&i.Answer,
		&i.Category,
		&i.Difficulty,
	)
	return i, err
}
