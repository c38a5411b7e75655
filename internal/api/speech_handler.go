package api

import "net/http"

type SpeakRequest struct {
	Text string `json:"text"`
}

type SpeakResponse struct {
	Spoken bool `json:"spoken"`
}

// POST /speech
func (h *Handler) speak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	spoken, err := h.speech.Speak(r.Context(), req.Text)
	if h.handleError(w, err, "speech") {
		return
	}
	respondJSON(w, http.StatusAccepted, SpeakResponse{Spoken: spoken})
}

// DELETE /speech
func (h *Handler) stopSpeech(w http.ResponseWriter, r *http.Request) {
	h.speech.Stop()
	w.WriteHeader(http.StatusNoContent)
}
