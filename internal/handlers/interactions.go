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

// InteractionServiceInterface defines the interface for reaction business logic
type InteractionServiceInterface interface {
	React(ctx context.Context, questionID, userID, reaction string) (*models.Interaction, error)
	Unreact(ctx context.Context, questionID, userID string) error
	Counts(ctx context.Context, questionID string) (*models.ReactionCounts, error)
	TopQuestions(ctx context.Context, reaction string, limit int) ([]*models.ReactionCounts, error)
}

// InteractionHandler handles reaction HTTP requests
type InteractionHandler struct {
	service InteractionServiceInterface
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(service InteractionServiceInterface) *InteractionHandler {
	return &InteractionHandler{service: service}
}

// ReactionRequest is the body for placing a reaction on a question
type ReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like super_like dislike"`
}

// React handles PUT /questions/{id}/reactions
func (h *InteractionHandler) React(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	interaction, err := h.service.React(r.Context(), chi.URLParam(r, "id"), claims.Subject, req.Type)
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, interaction)
}

// Unreact handles DELETE /questions/{id}/reactions
func (h *InteractionHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	if err := h.service.Unreact(r.Context(), chi.URLParam(r, "id"), claims.Subject); err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Counts handles GET /questions/{id}/reactions
func (h *InteractionHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, counts)
}

// TopQuestions handles GET /analytics/top-questions with type and limit params
func (h *InteractionHandler) TopQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	top, err := h.service.TopQuestions(r.Context(), q.Get("type"), limit)
	if err != nil {
		writeServiceError(w, err, "Question not found")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, top)
}
