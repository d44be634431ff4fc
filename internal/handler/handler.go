// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gtmountains/newsletter/internal/handler/dto"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "GT Mountains Newsletter API"

// Handler serves the static service endpoints.
type Handler struct {
	docsURL string
}

// New creates a new Handler. docsURL is where API documentation lives.
func New(docsURL string) *Handler {
	return &Handler{docsURL: docsURL}
}

// Root reports service metadata.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.RootResponse{
		Message:       ServiceName,
		Documentation: h.docsURL,
		Status:        "active",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all that is left is to record it.
		slog.Default().ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, r, status, dto.ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}
