package handler

import (
	"net/http"
)

// DocsHandler serves the OpenAPI document.
type DocsHandler struct {
	document []byte
}

// NewDocsHandler creates a DocsHandler for an OpenAPI YAML document.
func NewDocsHandler(document []byte) *DocsHandler {
	return &DocsHandler{document: document}
}

// OpenAPI writes the document verbatim.
// GET /docs
func (h *DocsHandler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	if len(h.document) == 0 {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "documentation not available")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.document)
}
