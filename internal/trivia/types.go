package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AllCategories is the current_category marker for unfiltered listings.
const AllCategories = "ALL"

// Category is a labeled grouping of questions. Categories are seeded out of band.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is a single trivia question as stored and served.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoryMap renders categories as the id -> type object clients expect.
func CategoryMap(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}

// FlexInt decodes a JSON integer that clients may send as a number or a numeric string.
// null and "" decode to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return fmt.Errorf("invalid integer %s", data)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns the plain integer value.
func (f FlexInt) Int() int {
	return int(f)
}

// CreateQuestionRequest is the payload for adding a question to the bank.
type CreateQuestionRequest struct {
	Question   string  `json:"question" validate:"required"`
	Answer     string  `json:"answer" validate:"required"`
	Category   FlexInt `json:"category" validate:"required"`
	Difficulty FlexInt `json:"difficulty" validate:"required"`
}

// SearchRequest carries a case-insensitive substring search.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// QuizCategory identifies the category a quiz is scoped to. ID 0 means all categories.
type QuizCategory struct {
	ID   FlexInt `json:"id"`
	Type string  `json:"type,omitempty"`
}

// QuizRequest asks for the next unseen question.
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions []FlexInt     `json:"previous_questions"`
}

// CategoryID returns the requested category, or 0 for all categories.
func (r QuizRequest) CategoryID() int {
	if r.QuizCategory == nil {
		return 0
	}
	return r.QuizCategory.ID.Int()
}

// PreviousIDs returns the already-seen question ids.
func (r QuizRequest) PreviousIDs() []int {
	ids := make([]int, 0, len(r.PreviousQuestions))
	for _, id := range r.PreviousQuestions {
		ids = append(ids, id.Int())
	}
	return ids
}

// QuestionPage is one page of the unfiltered question listing.
type QuestionPage struct {
	Categories []Category
	Questions  []Question
	Total      int
}
