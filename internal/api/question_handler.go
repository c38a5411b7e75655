package api

import (
	"net/http"
	"strconv"

	"github.com/civicspath/backend/internal/domain/category"
	"github.com/civicspath/backend/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionResponse struct {
	ID                  int      `json:"id"`
	Category            string   `json:"category"`
	CategoryLabel       string   `json:"category_label"`
	Prompt              string   `json:"prompt"`
	Answers             []string `json:"answers"`
	Explanation         string   `json:"explanation,omitempty"`
	RequiredAnswers     int      `json:"required_answers"`
	Dynamic             bool     `json:"dynamic"`
	SeniorEligible      bool     `json:"senior_eligible"`
	NeedsStateSelection bool     `json:"needs_state_selection,omitempty"`
	Hint                string   `json:"hint,omitempty"`
	IsCustom            bool     `json:"is_custom,omitempty"`
	InLearningList      bool     `json:"in_learning_list"`
}

type CategoryProgressResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Total    int    `json:"total"`
	Seen     int    `json:"seen"`
	Learning int    `json:"learning"`
	Percent  int    `json:"percent"`
}

// toQuestionResponse shows the answers accepted for this user: for dynamic
// questions those resolved from the current settings and officials.
func (h *Handler) toQuestionResponse(q questionbank.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:              q.ID,
		Category:        string(q.Category),
		CategoryLabel:   q.Category.Label(),
		Prompt:          q.Prompt,
		Answers:         q.Answers,
		Explanation:     q.Explanation,
		RequiredAnswers: q.RequiredAnswers(),
		Dynamic:         q.Dynamic,
		SeniorEligible:  q.SeniorEligible,
		InLearningList:  h.progress.InLearningList(q.ID),
	}
	if res := h.practice.Resolve(q); res != nil {
		resp.Answers = res.CorrectAnswers
		resp.NeedsStateSelection = res.NeedsStateSelection
		resp.Hint = res.Hint
		resp.IsCustom = res.IsCustom
	}
	if resp.Answers == nil {
		resp.Answers = []string{}
	}
	return resp
}

func parseQuestionID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("questionID"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid question id")
		return 0, false
	}
	return id, true
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions?q=&category=
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	cat := category.Category(r.URL.Query().Get("category"))
	if cat != "" && !cat.Valid() {
		respondError(w, http.StatusBadRequest, "invalid category: must be government, history, or civics")
		return
	}

	questions := h.practice.Questions(r.URL.Query().Get("q"), cat)
	response := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		response[i] = h.toQuestionResponse(q)
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /questions/{questionID}
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseQuestionID(w, r)
	if !ok {
		return
	}
	q, found := h.practice.Question(id)
	if !found {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}
	respondJSON(w, http.StatusOK, h.toQuestionResponse(q))
}

// GET /categories/progress
func (h *Handler) categoryProgress(w http.ResponseWriter, r *http.Request) {
	stats := h.practice.CategoryProgress()
	response := make([]CategoryProgressResponse, len(stats))
	for i, cs := range stats {
		response[i] = CategoryProgressResponse{
			Category: string(cs.Category),
			Label:    cs.Category.Label(),
			Total:    cs.Total,
			Seen:     cs.Seen,
			Learning: cs.Learning,
			Percent:  cs.Percent(),
		}
	}
	respondJSON(w, http.StatusOK, response)
}
