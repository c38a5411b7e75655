package api

import (
	"io"
	"net/http"
)

// Settings travel in their stored shape so exports and the device app
// agree on the field names.

// GET /settings
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progress.Settings())
}

// PATCH /settings
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.progress.UpdateSettings(r.Context(), patch)
	if h.handleError(w, err, "settings") {
		return
	}
	h.logger.Debug("settings updated")
	respondJSON(w, http.StatusOK, settings)
}
