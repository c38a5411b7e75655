package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/civicspath/backend/internal/domain/progress"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddLearningRequest struct {
	QuestionID int `json:"question_id"`
}

func (r *AddLearningRequest) Validate() error {
	if r.QuestionID <= 0 {
		return errors.New("question_id is required")
	}
	return nil
}

type UpdateLearningStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateLearningStatusRequest) Validate() error {
	if !progress.LearningStatus(r.Status).Valid() {
		return errors.New("invalid status: must be still-learning or known")
	}
	return nil
}

type LearningItemResponse struct {
	QuestionID   int        `json:"question_id"`
	Prompt       string     `json:"prompt"`
	Status       string     `json:"status"`
	AddedAt      time.Time  `json:"added_at"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

type LearningListResponse struct {
	Items         []LearningItemResponse `json:"items"`
	StillLearning int                    `json:"still_learning"`
	Known         int                    `json:"known"`
}

func (h *Handler) toLearningItemResponse(item progress.LearningItem) LearningItemResponse {
	resp := LearningItemResponse{
		QuestionID:   item.QuestionID,
		Status:       string(item.Status),
		AddedAt:      item.AddedAt,
		LastReviewed: item.LastReviewed,
	}
	if q, ok := h.practice.Question(item.QuestionID); ok {
		resp.Prompt = q.Prompt
	}
	return resp
}

func (h *Handler) learningItem(questionID int) (LearningItemResponse, bool) {
	for _, item := range h.progress.LearningList() {
		if item.QuestionID == questionID {
			return h.toLearningItemResponse(item), true
		}
	}
	return LearningItemResponse{}, false
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /learning?status=
func (h *Handler) listLearning(w http.ResponseWriter, r *http.Request) {
	status := progress.LearningStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid status: must be still-learning or known")
		return
	}

	items := h.progress.LearningItems(status)
	stillLearning, known := h.progress.LearningCounts()
	response := LearningListResponse{
		Items:         make([]LearningItemResponse, len(items)),
		StillLearning: stillLearning,
		Known:         known,
	}
	for i, item := range items {
		response.Items[i] = h.toLearningItemResponse(item)
	}
	respondJSON(w, http.StatusOK, response)
}

// POST /learning
func (h *Handler) addLearning(w http.ResponseWriter, r *http.Request) {
	var req AddLearningRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := h.practice.Question(req.QuestionID); !ok {
		respondError(w, http.StatusNotFound, "question not found")
		return
	}

	if err := h.progress.AddToLearningList(r.Context(), req.QuestionID); h.handleError(w, err, "learning item") {
		return
	}
	item, _ := h.learningItem(req.QuestionID)
	respondJSON(w, http.StatusCreated, item)
}

// DELETE /learning/{questionID}
func (h *Handler) removeLearning(w http.ResponseWriter, r *http.Request) {
	id, ok := parseQuestionID(w, r)
	if !ok {
		return
	}
	if err := h.progress.RemoveFromLearningList(r.Context(), id); h.handleError(w, err, "learning item") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /learning/{questionID}/status
func (h *Handler) updateLearningStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseQuestionID(w, r)
	if !ok {
		return
	}
	var req UpdateLearningStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.progress.UpdateLearningStatus(r.Context(), id, progress.LearningStatus(req.Status))
	if h.handleError(w, err, "learning item") {
		return
	}
	item, _ := h.learningItem(id)
	respondJSON(w, http.StatusOK, item)
}
