package handlers

import (
	"errors"
	"net/http"

	"github.com/abhisekadhikari/burningsawals/internal/models"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

// writeServiceError maps sentinel service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, notFoundMsg)
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Forbidden")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
