// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Study
	mux.HandleFunc("GET /questions", h.listQuestions)
	mux.HandleFunc("GET /questions/{questionID}", h.getQuestion)
	mux.HandleFunc("GET /categories/progress", h.categoryProgress)

	// Sessions
	mux.HandleFunc("POST /sessions", h.requireAccess(h.createSession))
	mux.HandleFunc("GET /sessions/{sessionID}", h.requireAccess(h.getSession))
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.requireAccess(h.submitAnswer))
	mux.HandleFunc("POST /sessions/{sessionID}/advance", h.requireAccess(h.advanceSession))

	// Results
	mux.HandleFunc("GET /results", h.listResults)
	mux.HandleFunc("DELETE /results", h.clearResults)
	mux.HandleFunc("GET /results/{resultID}", h.getResult)
	mux.HandleFunc("GET /weak-areas", h.requireAccess(h.weakAreas))

	// Learning list
	mux.HandleFunc("GET /learning", h.requireAccess(h.listLearning))
	mux.HandleFunc("POST /learning", h.requireAccess(h.addLearning))
	mux.HandleFunc("DELETE /learning/{questionID}", h.requireAccess(h.removeLearning))
	mux.HandleFunc("PUT /learning/{questionID}/status", h.requireAccess(h.updateLearningStatus))

	// Settings
	mux.HandleFunc("GET /settings", h.getSettings)
	mux.HandleFunc("PATCH /settings", h.updateSettings)

	// Entitlement
	mux.HandleFunc("GET /entitlement", h.getEntitlement)
	mux.HandleFunc("POST /entitlement/promo", h.redeemPromo)
	mux.HandleFunc("DELETE /entitlement/promo", h.clearPromo)
	mux.HandleFunc("POST /entitlement/refresh", h.refreshEntitlement)
	mux.HandleFunc("POST /entitlement/restore", h.restorePurchases)
	mux.HandleFunc("GET /entitlement/offerings", h.listOfferings)
	mux.HandleFunc("POST /entitlement/purchase", h.purchase)

	// Speech
	mux.HandleFunc("POST /speech", h.speak)
	mux.HandleFunc("DELETE /speech", h.stopSpeech)

	// Data
	mux.HandleFunc("POST /reset", h.resetAll)
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /import", h.importAll)
}
