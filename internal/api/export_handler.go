package api

import (
	"encoding/json"
	"net/http"

	"github.com/civicspath/backend/internal/domain/progress"
)

type ImportResult struct {
	TestResults   int `json:"test_results"`
	LearningItems int `json:"learning_items"`
	SeenQuestions int `json:"seen_questions"`
}

// GET /export
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=civics-progress.json")
	json.NewEncoder(w).Encode(h.progress.Export())
}

// POST /import
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	// Settings missing from the file keep their defaults.
	snap := progress.Snapshot{Settings: progress.DefaultSettings()}
	if !decodeJSON(w, r, &snap) {
		return
	}

	if err := h.progress.Import(r.Context(), snap); h.handleError(w, err, "import") {
		return
	}
	exported := h.progress.Export()
	h.logger.Info("progress imported")
	respondJSON(w, http.StatusOK, ImportResult{
		TestResults:   len(exported.TestResults),
		LearningItems: len(exported.LearningList),
		SeenQuestions: len(exported.SeenQuestions),
	})
}

// POST /reset
func (h *Handler) resetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.ResetAll(r.Context()); h.handleError(w, err, "progress") {
		return
	}
	h.logger.Info("progress reset")
	w.WriteHeader(http.StatusNoContent)
}
