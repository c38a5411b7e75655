package api

import (
	"net/http"
	"time"

	"github.com/civicspath/backend/internal/domain/progress"
)

// ── Request / Response types ────────────────────────────────────────────────

type AnswerResponse struct {
	QuestionID      int      `json:"question_id"`
	SelectedAnswer  string   `json:"selected_answer"`
	SelectedAnswers []string `json:"selected_answers,omitempty"`
	IsCorrect       bool     `json:"is_correct"`
}

type ResultResponse struct {
	ID             string           `json:"id"`
	Date           time.Time        `json:"date"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Accuracy       int              `json:"accuracy"`
	TimeSpent      int              `json:"time_spent"`
	Passed         bool             `json:"passed"`
	IncorrectIDs   []int            `json:"incorrect_ids"`
	Answers        []AnswerResponse `json:"answers"`
}

type WeakAreaResponse struct {
	QuestionID int    `json:"question_id"`
	Prompt     string `json:"prompt"`
	Category   string `json:"category"`
	Misses     int    `json:"misses"`
}

func toAnswerResponse(a progress.AnswerRecord) AnswerResponse {
	return AnswerResponse{
		QuestionID:      a.QuestionID,
		SelectedAnswer:  a.SelectedAnswer,
		SelectedAnswers: a.SelectedAnswers,
		IsCorrect:       a.IsCorrect,
	}
}

func toResultResponse(r progress.TestResult) ResultResponse {
	answers := make([]AnswerResponse, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = toAnswerResponse(a)
	}
	incorrect := r.IncorrectIDs()
	if incorrect == nil {
		incorrect = []int{}
	}
	return ResultResponse{
		ID:             r.ID,
		Date:           r.Date,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Accuracy:       r.Accuracy,
		TimeSpent:      r.TimeSpent,
		Passed:         r.Passed(),
		IncorrectIDs:   incorrect,
		Answers:        answers,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /results
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	results := h.progress.TestResults()
	response := make([]ResultResponse, len(results))
	for i, res := range results {
		response[i] = toResultResponse(res)
	}
	respondJSON(w, http.StatusOK, response)
}

// DELETE /results
func (h *Handler) clearResults(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.ClearTestResults(r.Context()); h.handleError(w, err, "results") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /results/{resultID}
func (h *Handler) getResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.progress.TestResult(r.PathValue("resultID"))
	if h.handleError(w, err, "result") {
		return
	}
	respondJSON(w, http.StatusOK, toResultResponse(result))
}

// GET /weak-areas
func (h *Handler) weakAreas(w http.ResponseWriter, r *http.Request) {
	areas := h.practice.WeakAreas()
	response := make([]WeakAreaResponse, len(areas))
	for i, a := range areas {
		response[i] = WeakAreaResponse{
			QuestionID: a.Question.ID,
			Prompt:     a.Question.Prompt,
			Category:   string(a.Question.Category),
			Misses:     a.Misses,
		}
	}
	respondJSON(w, http.StatusOK, response)
}
