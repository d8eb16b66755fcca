package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

// QuestionServiceInterface defines the interface for question business logic
type QuestionServiceInterface interface {
	Get(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context, genreID string, limit, offset int) ([]*models.Question, error)
	Create(ctx context.Context, title, createdBy string, genreIDs, typeIDs []string) (*models.Question, error)
	Update(ctx context.Context, id, title string, genreIDs, typeIDs []string) (*models.Question, error)
	Delete(ctx context.Context, id string) error
}

// QuestionHandler handles question HTTP requests
type QuestionHandler struct {
	service QuestionServiceInterface
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(service QuestionServiceInterface) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// QuestionRequest is the create/update body for a question
type QuestionRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=500"`
	GenreIDs        []string `json:"genre_ids"`
	QuestionTypeIDs []string `json:"question_type_ids"`
}

// List handles GET /questions with optional genre_id, limit and offset params
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	questions, err := h.service.List(r.Context(), q.Get("genre_id"), limit, offset)
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, questions)
}

// Get handles GET /questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, question)
}

// Create handles POST /questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	question, err := h.service.Create(r.Context(), req.Title, claims.Subject, req.GenreIDs, req.QuestionTypeIDs)
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, question)
}

// Update handles PUT /questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	question, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.GenreIDs, req.QuestionTypeIDs)
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
