// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	practicesession "github.com/civicspath/backend/internal/domain/practice_session"
	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/purchases"
	"github.com/civicspath/backend/internal/service"
	"github.com/civicspath/backend/internal/speech"
	"github.com/civicspath/backend/internal/store"
)

// maxBodyBytes caps request bodies. Imports are the largest payload.
const maxBodyBytes = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	practice    *service.PracticeService
	entitlement *service.EntitlementService
	speech      *service.SpeechService
	progress    *progress.Store
	logger      *zap.Logger
}

func NewHandler(
	practice *service.PracticeService,
	entitlement *service.EntitlementService,
	speech *service.SpeechService,
	progress *progress.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		practice:    practice,
		entitlement: entitlement,
		speech:      speech,
		progress:    progress,
		logger:      logger,
	}
}

type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. Returns false after writing a
// 400 when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleError maps domain and collaborator errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var providerErr *purchases.ProviderError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")

	case errors.Is(err, progress.ErrNotInLearningList):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, practicesession.ErrUnknownMode),
		errors.Is(err, progress.ErrInvalidStatus),
		errors.Is(err, progress.ErrInvalidSettings),
		errors.Is(err, progress.ErrPromoEmpty),
		errors.Is(err, speech.ErrEmptyText):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, practicesession.ErrNotInProgress),
		errors.Is(err, practicesession.ErrAlreadyAnswered),
		errors.Is(err, practicesession.ErrNotAnswered),
		errors.Is(err, practicesession.ErrStateSelectionRequired),
		errors.Is(err, progress.ErrPromoAlreadyActive):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, practicesession.ErrIncompleteAnswer),
		errors.Is(err, progress.ErrPromoInvalid):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, purchases.ErrUnavailable), errors.Is(err, speech.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())

	case errors.As(err, &providerErr):
		respondError(w, http.StatusBadGateway, providerErr.Reason)

	case errors.Is(err, practicesession.ErrRecording):
		h.logger.Error("progress not recorded", zap.String("entity", entity), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to record progress, try again")

	default:
		h.logger.Error("request failed", zap.String("entity", entity), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
