package handlers

import (
	"net/http"
)

// GetStats returns the full mapping produced by the last pass.
func (h *Handlers) GetStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.service.Snapshot())
}

// GetFileStats returns the cached entry for the single path named by the
// "path" query parameter.
func (h *Handlers) GetFileStats(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	entry, ok := h.service.Entry(path)
	if !ok {
		writeJSONError(w, "no stats for path", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, entry)
}
