package handlers

import (
	"errors"
	"net/http"

	"filestats/internal/indexer"
	"filestats/internal/logging"
)

// ReindexResponse is returned after a completed pass.
type ReindexResponse struct {
	Status string         `json:"status"`
	Result indexer.Result `json:"result"`
}

// TriggerReindex runs one stats pass. The query parameters select the mode:
//
//	reindex_all   rebuild every entry from disk
//	reindex_cat   rebuild the entries of one category
//	reindex       additive pass (the default; the bare POST does the same)
//	delindex      also drop entries whose files are gone
//
// reindex_all wins over reindex_cat, which wins over the additive default.
func (h *Handlers) TriggerReindex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	all := q.Has("reindex_all")
	category := q.Get("reindex_cat")
	sweep := q.Has("delindex")

	req, err := h.service.ParseRequest(all, category, sweep)
	if err != nil {
		if errors.Is(err, indexer.ErrUnknownCategory) {
			writeJSONError(w, "unknown category: "+category, http.StatusBadRequest)
			return
		}
		logging.Error("Reindex request failed: %v", err)
		writeJSONError(w, "failed to prepare reindex", http.StatusInternalServerError)
		return
	}

	result, err := h.service.Reindex(req)
	if err != nil {
		if errors.Is(err, indexer.ErrIndexInProgress) {
			writeJSONError(w, "indexing already in progress", http.StatusConflict)
			return
		}
		logging.Error("Reindex failed: %v", err)
		writeJSONError(w, "reindex failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ReindexResponse{Status: "completed", Result: result})
}
