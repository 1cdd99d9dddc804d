package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/triviabank/trivia-api/internal/logging"
)

var quizDraws = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_quiz_draws_total",
	Help: "Quiz draws by outcome (question or exhausted).",
}, []string{"outcome"})

// Store is the persistence collaborator. Listings are ordered by ascending id.
// DeleteQuestion returns ErrNotFound for unknown ids; CreateQuestion returns
// ErrInvalidCategory when the category does not exist.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	CreateQuestion(ctx context.Context, q Question) (int, error)
	DeleteQuestion(ctx context.Context, id int) error
}

// EventPublisher is notified after the bank changes.
type EventPublisher interface {
	QuestionCreated(ctx context.Context, q Question) error
	QuestionDeleted(ctx context.Context, id int) error
}

type nopPublisher struct{}

func (nopPublisher) QuestionCreated(context.Context, Question) error { return nil }
func (nopPublisher) QuestionDeleted(context.Context, int) error      { return nil }

// ServiceOptions tunes a Service. Zero values pick defaults.
type ServiceOptions struct {
	PageSize  int
	Rand      Rand
	Publisher EventPublisher
}

// Service implements the question bank operations. It holds no per-request state;
// every call reads the store afresh.
type Service struct {
	store     Store
	publisher EventPublisher
	rnd       Rand
	pageSize  int
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewService(store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Rand == nil {
		opts.Rand = globalRand{}
	}
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}
	return &Service{
		store:     store,
		publisher: opts.Publisher,
		rnd:       opts.Rand,
		pageSize:  opts.PageSize,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "trivia_service").Logger(),
	}
}

// ListCategories returns every category. An empty bank is NotFound.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	const op = "list categories"
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fault(op, err)
	}
	if len(categories) == 0 {
		return nil, notFound(op, errors.New("no categories"))
	}
	return categories, nil
}

// ListQuestions returns one page of all questions along with the categories and total count.
// Missing categories or an empty page are NotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	const op = "list questions"
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return QuestionPage{}, fault(op, err)
	}
	window := Paginate(questions, page, s.pageSize)
	if len(window) == 0 {
		return QuestionPage{}, notFound(op, fmt.Errorf("page %d is empty", page))
	}
	return QuestionPage{
		Categories: categories,
		Questions:  window,
		Total:      len(questions),
	}, nil
}

// SearchQuestions returns every question whose text contains term, ignoring case.
// Zero matches is not an error.
func (s *Service) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, fault("search questions", err)
	}
	return Search(questions, term), nil
}

// QuestionsByCategory returns the questions of one category. An empty result is NotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	const op = "questions by category"
	questions, err := s.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, unprocessable(op, err)
	}
	if len(questions) == 0 {
		return nil, notFound(op, fmt.Errorf("category %d has no questions", categoryID))
	}
	return questions, nil
}

// CreateQuestion validates and persists a new question, returning its id.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (int, error) {
	const op = "create question"
	if err := s.validate.Struct(req); err != nil {
		return 0, badRequest(op, err)
	}
	q := Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.Int(),
		Difficulty: req.Difficulty.Int(),
	}
	id, err := s.store.CreateQuestion(ctx, q)
	if err != nil {
		return 0, unprocessable(op, err)
	}
	q.ID = id

	if err := s.publisher.QuestionCreated(ctx, q); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Err(err).Int("question_id", id).Msg("publish question_created failed")
	}
	s.logger.Debug().Int("question_id", id).Int("category", q.Category).Msg("question created")
	return id, nil
}

// DeleteQuestion removes a question. Unknown ids are NotFound, so a repeated delete never succeeds twice.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	const op = "delete question"
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(op, fmt.Errorf("question %d: %w", id, err))
		}
		return fault(op, err)
	}

	if err := s.publisher.QuestionDeleted(ctx, id); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Err(err).Int("question_id", id).Msg("publish question_deleted failed")
	}
	s.logger.Debug().Int("question_id", id).Msg("question deleted")
	return nil
}

// NextQuestion draws a random question from categoryID (0 for all) that is not in previous.
// A nil question with a nil error means the pool is exhausted.
func (s *Service) NextQuestion(ctx context.Context, categoryID int, previous []int) (*Question, error) {
	const op = "next quiz question"
	var (
		questions []Question
		err       error
	)
	if categoryID != 0 {
		questions, err = s.store.ListQuestionsByCategory(ctx, categoryID)
	} else {
		questions, err = s.store.ListQuestions(ctx)
	}
	if err != nil {
		return nil, fault(op, err)
	}

	q, ok := Draw(CandidatePool(questions, categoryID, previous), s.rnd)
	if !ok {
		quizDraws.WithLabelValues("exhausted").Inc()
		return nil, nil
	}
	quizDraws.WithLabelValues("question").Inc()
	return &q, nil
}
