package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

// GenreServiceInterface defines the interface for genre business logic
type GenreServiceInterface interface {
	List(ctx context.Context) ([]*models.Genre, error)
	Get(ctx context.Context, id string) (*models.Genre, error)
	Create(ctx context.Context, name string) (*models.Genre, error)
	Update(ctx context.Context, id, name string) (*models.Genre, error)
	Delete(ctx context.Context, id string) error
}

// GenreHandler handles genre HTTP requests
type GenreHandler struct {
	service GenreServiceInterface
}

// NewGenreHandler creates a new GenreHandler
func NewGenreHandler(service GenreServiceInterface) *GenreHandler {
	return &GenreHandler{service: service}
}

// GenreRequest is the create/update body for a genre
type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// List handles GET /genres
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Genre not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, genres)
}

// Get handles GET /genres/{id}
func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	genre, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Genre not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, genre)
}

// Create handles POST /genres
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	genre, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err, "Genre not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, genre)
}

// Update handles PUT /genres/{id}
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	genre, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err, "Genre not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, genre)
}

// Delete handles DELETE /genres/{id}
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Genre not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
