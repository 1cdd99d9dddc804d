package trivia

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/triviabank/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the question bank over JSON.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the question bank HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the question bank routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/search", h.HandleSearch)
	mux.HandleFunc("/questions/{id}", h.HandleQuestion)
	mux.HandleFunc("/quizzes", h.HandleQuiz)
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": CategoryMap(categories),
	})
}

// HandleQuestions handles GET /questions?page=N and POST /questions.
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.createOrSearch(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       CategoryMap(result.Categories),
		"current_category": AllCategories,
		"questions":        result.Questions,
		"total_questions":  result.Total,
	})
}

// createOrSearch keeps the legacy single-endpoint contract: a payload carrying
// searchTerm is a search, anything else is a creation.
func (h *HTTPHandler) createOrSearch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	if termRaw, ok := probe["searchTerm"]; ok {
		var term string
		if err := json.Unmarshal(termRaw, &term); err != nil {
			httperrors.RespondUnprocessable(w)
			return
		}
		h.search(w, r, term)
		return
	}

	var req CreateQuestionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	h.create(w, r, req)
}

func (h *HTTPHandler) create(w http.ResponseWriter, r *http.Request, req CreateQuestionRequest) {
	id, err := h.svc.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": id,
	})
}

// HandleSearch handles POST /questions/search
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SearchTerm == nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	h.search(w, r, *req.SearchTerm)
}

// search reports success only when something matched; zero matches is still a 200.
func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	questions, err := h.svc.SearchQuestions(r.Context(), term)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          len(questions) > 0,
		"questions":        questions,
		"total_questions":  len(questions),
		"current_category": AllCategories,
	})
}

// HandleQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, err := parseID(r.PathValue("id"))
	if errors.Is(err, strconv.ErrRange) {
		httperrors.RespondNotFound(w)
		return
	}
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	questions, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"current_category": id,
		"questions":        questions,
		"total_questions":  len(questions),
	})
}

// HandleQuiz handles POST /quizzes. An exhausted pool answers 200 with question=false.
func (h *HTTPHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	q, err := h.svc.NextQuestion(r.Context(), req.CategoryID(), req.PreviousIDs())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	var question interface{} = false
	if q != nil {
		question = q
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(KindOf(err))
	logger := h.logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	httperrors.RespondError(w, status)
}

// parseID reads a path id. Ids are 32-bit in storage, so larger values fail with strconv.ErrRange.
func parseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
