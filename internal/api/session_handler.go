package api

import (
	"errors"
	"net/http"

	practicesession "github.com/civicspath/backend/internal/domain/practice_session"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Mode        string `json:"mode"`
	QuestionIDs []int  `json:"question_ids,omitempty"`
}

func (r *CreateSessionRequest) Validate() error {
	if r.Mode == "" {
		r.Mode = string(practicesession.ModeStandard)
	}
	if !practicesession.Mode(r.Mode).Valid() {
		return errors.New("invalid mode: must be standard, wrong-replay, learning-replay, or weak-replay")
	}
	return nil
}

type PresentedQuestion struct {
	QuestionID          int             `json:"question_id"`
	Prompt              string          `json:"prompt"`
	Category            string          `json:"category"`
	Choices             []string        `json:"choices"`
	RequiredAnswers     int             `json:"required_answers"`
	NeedsStateSelection bool            `json:"needs_state_selection,omitempty"`
	Hint                string          `json:"hint,omitempty"`
	Answer              *AnswerResponse `json:"answer,omitempty"`
}

type SessionResponse struct {
	ID             string             `json:"id"`
	Mode           string             `json:"mode"`
	State          string             `json:"state"`
	Index          int                `json:"index"`
	Total          int                `json:"total"`
	ElapsedSeconds int                `json:"elapsed_seconds"`
	Current        *PresentedQuestion `json:"current,omitempty"`
	Result         *ResultResponse    `json:"result,omitempty"`
}

type SubmitAnswerRequest struct {
	Answers []string `json:"answers"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if len(r.Answers) == 0 {
		return errors.New("answers is required")
	}
	return nil
}

type SubmitAnswerResponse struct {
	IsCorrect   bool   `json:"is_correct"`
	IsComplete  bool   `json:"is_complete"`
	Explanation string `json:"explanation,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

func toSessionResponse(s *practicesession.PracticeSession) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		Mode:           string(s.Mode),
		State:          s.State().String(),
		Index:          s.Index(),
		Total:          len(s.Questions),
		ElapsedSeconds: int(s.Elapsed().Seconds()),
	}
	if cur, err := s.Current(); err == nil {
		pq := &PresentedQuestion{
			QuestionID:          cur.Question.ID,
			Prompt:              cur.Question.Prompt,
			Category:            string(cur.Question.Category),
			Choices:             cur.Choices,
			RequiredAnswers:     cur.RequiredAnswers,
			NeedsStateSelection: cur.NeedsStateSelection,
			Hint:                cur.Hint,
		}
		if cur.Answer != nil {
			a := toAnswerResponse(*cur.Answer)
			pq.Answer = &a
		}
		resp.Current = pq
	}
	if result, ok := s.Result(); ok {
		rr := toResultResponse(result)
		resp.Result = &rr
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.practice.Start(practicesession.Mode(req.Mode), req.QuestionIDs)
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.practice.Session(r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// POST /sessions/{sessionID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	session, err := h.practice.Session(sessionID)
	if h.handleError(w, err, "session") {
		return
	}

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cur, err := session.Current()
	if h.handleError(w, err, "session") {
		return
	}

	verdict, err := h.practice.Submit(r.Context(), sessionID, req.Answers)
	resp := SubmitAnswerResponse{
		IsCorrect:   verdict.IsCorrect,
		IsComplete:  verdict.IsComplete,
		Explanation: cur.Question.Explanation,
	}
	if errors.Is(err, practicesession.ErrRecording) {
		// The answer counts; only the seen marker was lost.
		resp.Warning = "progress could not be saved"
		err = nil
	}
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /sessions/{sessionID}/advance
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if _, err := h.practice.Advance(r.Context(), sessionID); h.handleError(w, err, "session") {
		return
	}
	session, err := h.practice.Session(sessionID)
	if h.handleError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}
