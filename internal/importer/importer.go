package importer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/triviabank/trivia-api/internal/trivia"
)

type source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error)
}

// Bank is the subset of trivia.Service the importer writes through.
type Bank interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
	SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error)
	CreateQuestion(ctx context.Context, req trivia.CreateQuestionRequest) (int, error)
}

// Options controls a single import run.
type Options struct {
	Amount     int
	Difficulty string
	// FallbackCategory receives questions whose Open Trivia DB category matches
	// no bank category. Zero drops them instead.
	FallbackCategory int
}

// Report summarizes an import run.
type Report struct {
	Fetched   int
	Created   int
	Duplicate int
	Unmapped  int
	Rejected  int
}

type Importer struct {
	source source
	bank   Bank
	logger zerolog.Logger
}

func New(src source, bank Bank, logger zerolog.Logger) *Importer {
	return &Importer{
		source: src,
		bank:   bank,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches one batch and creates every new question through the bank.
func (im *Importer) Run(ctx context.Context, opts Options) (Report, error) {
	var report Report
	if opts.Amount < 1 || opts.Amount > MaxAmount {
		return report, fmt.Errorf("amount must be between 1 and %d, got %d", MaxAmount, opts.Amount)
	}
	switch opts.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		return report, fmt.Errorf("unknown difficulty %q", opts.Difficulty)
	}

	categories, err := im.bank.ListCategories(ctx)
	if err != nil {
		return report, fmt.Errorf("list categories: %w", err)
	}
	existing, err := im.bank.SearchQuestions(ctx, "")
	if err != nil {
		return report, fmt.Errorf("list questions: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, q := range existing {
		seen[normalize(q.Question)] = struct{}{}
	}

	fetched, err := im.source.Fetch(ctx, opts.Amount, opts.Difficulty)
	if err != nil {
		return report, fmt.Errorf("fetch opentdb: %w", err)
	}
	report.Fetched = len(fetched)

	for _, raw := range fetched {
		text := html.UnescapeString(raw.Question)
		key := normalize(text)
		if _, dup := seen[key]; dup {
			report.Duplicate++
			continue
		}

		categoryID := MatchCategory(categories, html.UnescapeString(raw.Category))
		if categoryID == 0 {
			categoryID = opts.FallbackCategory
		}
		if categoryID == 0 {
			im.logger.Debug().Str("opentdb_category", raw.Category).Msg("no matching bank category")
			report.Unmapped++
			continue
		}

		id, err := im.bank.CreateQuestion(ctx, trivia.CreateQuestionRequest{
			Question:   text,
			Answer:     html.UnescapeString(raw.CorrectAnswer),
			Category:   trivia.FlexInt(categoryID),
			Difficulty: trivia.FlexInt(DifficultyLevel(raw.Difficulty)),
		})
		if err != nil {
			if trivia.KindOf(err) == trivia.KindFault {
				return report, err
			}
			im.logger.Warn().Err(err).Str("question", text).Msg("question rejected")
			report.Rejected++
			continue
		}
		seen[key] = struct{}{}
		report.Created++
		im.logger.Debug().Int("question_id", id).Int("category", categoryID).Msg("question imported")
	}

	im.logger.Info().
		Int("fetched", report.Fetched).
		Int("created", report.Created).
		Int("duplicate", report.Duplicate).
		Int("unmapped", report.Unmapped).
		Int("rejected", report.Rejected).
		Msg("import finished")
	return report, nil
}

// DifficultyLevel maps Open Trivia DB difficulty names onto the bank's 1-5 scale.
func DifficultyLevel(name string) int {
	switch strings.ToLower(name) {
	case "easy":
		return 1
	case "medium":
		return 3
	case "hard":
		return 5
	default:
		return 2
	}
}

// MatchCategory returns the id of the first bank category whose type occurs in
// name, ignoring case, or 0 when none does. "Science & Nature" maps to Science.
func MatchCategory(categories []trivia.Category, name string) int {
	lower := strings.ToLower(name)
	for _, c := range categories {
		if c.Type == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.Type)) {
			return c.ID
		}
	}
	return 0
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

