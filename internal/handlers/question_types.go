package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

// QuestionTypeServiceInterface defines the interface for question type business logic
type QuestionTypeServiceInterface interface {
	List(ctx context.Context) ([]*models.QuestionType, error)
	Get(ctx context.Context, id string) (*models.QuestionType, error)
	Create(ctx context.Context, name string) (*models.QuestionType, error)
	Update(ctx context.Context, id, name string) (*models.QuestionType, error)
	Delete(ctx context.Context, id string) error
}

// QuestionTypeHandler handles question type HTTP requests
type QuestionTypeHandler struct {
	service QuestionTypeServiceInterface
}

// NewQuestionTypeHandler creates a new QuestionTypeHandler
func NewQuestionTypeHandler(service QuestionTypeServiceInterface) *QuestionTypeHandler {
	return &QuestionTypeHandler{service: service}
}

// QuestionTypeRequest is the create/update body for a question type
type QuestionTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// List handles GET /question-types
func (h *QuestionTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Question type not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, types)
}

// Get handles GET /question-types/{id}
func (h *QuestionTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	qt, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Question type not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, qt)
}

// Create handles POST /question-types
func (h *QuestionTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req QuestionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	qt, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err, "Question type not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, qt)
}

// Update handles PUT /question-types/{id}
func (h *QuestionTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req QuestionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	qt, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err, "Question type not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, qt)
}

// Delete handles DELETE /question-types/{id}
func (h *QuestionTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Question type not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
