package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/civicspath/backend/internal/purchases"
	"github.com/civicspath/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type RedeemPromoRequest struct {
	Code string `json:"code"`
}

type PurchaseRequest struct {
	ProductID  string `json:"product_id"`
	FetchToken string `json:"fetch_token"`
}

func (r *PurchaseRequest) Validate() error {
	if r.ProductID == "" {
		return errors.New("product_id is required")
	}
	if r.FetchToken == "" {
		return errors.New("fetch_token is required")
	}
	return nil
}

type EntitlementResponse struct {
	Premium            bool      `json:"premium"`
	StorePremium       bool      `json:"store_premium"`
	PromoCode          string    `json:"promo_code,omitempty"`
	TrialStart         time.Time `json:"trial_start"`
	TrialDaysRemaining int       `json:"trial_days_remaining"`
	TrialExpired       bool      `json:"trial_expired"`
	HasAccess          bool      `json:"has_access"`
	Notice             string    `json:"notice,omitempty"`
}

type PackageResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
}

type OfferingResponse struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Current     bool              `json:"current"`
	Packages    []PackageResponse `json:"packages"`
}

func toEntitlementResponse(st service.EntitlementStatus) EntitlementResponse {
	return EntitlementResponse{
		Premium:            st.Premium,
		StorePremium:       st.StorePremium,
		PromoCode:          st.PromoCode,
		TrialStart:         st.TrialStart,
		TrialDaysRemaining: st.TrialDaysRemaining,
		TrialExpired:       st.TrialExpired,
		HasAccess:          st.HasAccess,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /entitlement
func (h *Handler) getEntitlement(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toEntitlementResponse(h.entitlement.Status()))
}

// POST /entitlement/promo
func (h *Handler) redeemPromo(w http.ResponseWriter, r *http.Request) {
	var req RedeemPromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Empty and unknown codes are rejected by the store with user-facing reasons.
	st, err := h.entitlement.RedeemPromo(r.Context(), req.Code)
	if h.handleError(w, err, "promo code") {
		return
	}
	respondJSON(w, http.StatusOK, toEntitlementResponse(st))
}

// DELETE /entitlement/promo
func (h *Handler) clearPromo(w http.ResponseWriter, r *http.Request) {
	st, err := h.entitlement.ClearPromo(r.Context())
	if h.handleError(w, err, "promo code") {
		return
	}
	respondJSON(w, http.StatusOK, toEntitlementResponse(st))
}

// POST /entitlement/refresh
func (h *Handler) refreshEntitlement(w http.ResponseWriter, r *http.Request) {
	h.syncEntitlement(w, r, h.entitlement.Refresh)
}

// POST /entitlement/restore
func (h *Handler) restorePurchases(w http.ResponseWriter, r *http.Request) {
	h.syncEntitlement(w, r, h.entitlement.Restore)
}

// syncEntitlement reports provider failures as a notice next to the
// unchanged entitlement; they never block the app.
func (h *Handler) syncEntitlement(w http.ResponseWriter, r *http.Request, sync func(context.Context) (service.EntitlementStatus, error)) {
	st, err := sync(r.Context())
	resp := toEntitlementResponse(st)
	if err != nil {
		var providerErr *purchases.ProviderError
		switch {
		case errors.Is(err, purchases.ErrUnavailable):
			resp.Notice = purchases.ErrUnavailable.Error()
		case errors.As(err, &providerErr):
			resp.Notice = "could not reach the app store, try again later"
		default:
			h.handleError(w, err, "entitlement")
			return
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /entitlement/offerings
func (h *Handler) listOfferings(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.entitlement.Offerings(r.Context())
	if h.handleError(w, err, "offerings") {
		return
	}

	response := make([]OfferingResponse, len(offerings))
	for i, o := range offerings {
		packages := make([]PackageResponse, len(o.Packages))
		for j, p := range o.Packages {
			packages[j] = PackageResponse{ID: p.ID, ProductID: p.ProductID}
		}
		response[i] = OfferingResponse{
			ID:          o.ID,
			Description: o.Description,
			Current:     o.Current,
			Packages:    packages,
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// POST /entitlement/purchase
func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	st, err := h.entitlement.Purchase(r.Context(), purchases.PurchaseRequest{
		ProductID:  req.ProductID,
		FetchToken: req.FetchToken,
	})
	if h.handleError(w, err, "purchase") {
		return
	}
	respondJSON(w, http.StatusOK, toEntitlementResponse(st))
}
