package purchases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL     = "https://api.revenuecat.com"
	DefaultEntitlement = "premium"
	DefaultPlatform    = "android"
)

// RevenueCatConfig configures the REST client.
type RevenueCatConfig struct {
	APIKey      string
	AppUserID   string
	Entitlement string // entitlement identifier that unlocks premium
	Platform    string // X-Platform header: android, ios, stripe, ...
	BaseURL     string
	HTTPClient  *http.Client
	Now         func() time.Time
}

// RevenueCat checks and grants entitlements through the RevenueCat REST API.
type RevenueCat struct {
	cfg    RevenueCatConfig
	client *http.Client
	now    func() time.Time
}

var _ Provider = (*RevenueCat)(nil)

// ProviderError is returned when the store API cannot be reached or answers
// with an error, so callers can tell store failures from local ones.
type ProviderError struct {
	Reason     string
	StatusCode int
	Wrapped    error
}

func (e *ProviderError) Error() string {
	msg := "purchase provider: " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Wrapped
}

func NewRevenueCat(cfg RevenueCatConfig) *RevenueCat {
	if cfg.Entitlement == "" {
		cfg.Entitlement = DefaultEntitlement
	}
	if cfg.Platform == "" {
		cfg.Platform = DefaultPlatform
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &RevenueCat{cfg: cfg, client: client, now: now}
}

// ── Provider ────────────────────────────────────────────────────────────────

func (rc *RevenueCat) CheckEntitlement(ctx context.Context) (bool, error) {
	var resp subscriberResponse
	if err := rc.do(ctx, http.MethodGet, rc.subscriberPath(""), nil, &resp); err != nil {
		return false, err
	}
	return rc.active(resp), nil
}

// Restore re-reads the subscriber; the device has already re-posted its
// receipts, so the server view is authoritative.
func (rc *RevenueCat) Restore(ctx context.Context) (bool, error) {
	return rc.CheckEntitlement(ctx)
}

func (rc *RevenueCat) ListOfferings(ctx context.Context) ([]Offering, error) {
	var resp offeringsResponse
	if err := rc.do(ctx, http.MethodGet, rc.subscriberPath("/offerings"), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]Offering, 0, len(resp.Offerings))
	for _, o := range resp.Offerings {
		off := Offering{
			ID:          o.Identifier,
			Description: o.Description,
			Current:     o.Identifier == resp.CurrentOfferingID,
		}
		for _, p := range o.Packages {
			off.Packages = append(off.Packages, Package{ID: p.Identifier, ProductID: p.PlatformProductIdentifier})
		}
		out = append(out, off)
	}
	return out, nil
}

func (rc *RevenueCat) Purchase(ctx context.Context, req PurchaseRequest) (bool, error) {
	if req.FetchToken == "" {
		return false, &ProviderError{Reason: "missing receipt token"}
	}
	body := receiptRequest{
		AppUserID:  rc.cfg.AppUserID,
		FetchToken: req.FetchToken,
		ProductID:  req.ProductID,
	}
	var resp subscriberResponse
	if err := rc.do(ctx, http.MethodPost, "/v1/receipts", body, &resp); err != nil {
		return false, err
	}
	return rc.active(resp), nil
}

// ── Wire types ──────────────────────────────────────────────────────────────

type subscriberResponse struct {
	Subscriber struct {
		Entitlements map[string]struct {
			ExpiresDate       *time.Time `json:"expires_date"`
			ProductIdentifier string     `json:"product_identifier"`
		} `json:"entitlements"`
	} `json:"subscriber"`
}

type offeringsResponse struct {
	CurrentOfferingID string `json:"current_offering_id"`
	Offerings         []struct {
		Identifier  string `json:"identifier"`
		Description string `json:"description"`
		Packages    []struct {
			Identifier                string `json:"identifier"`
			PlatformProductIdentifier string `json:"platform_product_identifier"`
		} `json:"packages"`
	} `json:"offerings"`
}

type receiptRequest struct {
	AppUserID  string `json:"app_user_id"`
	FetchToken string `json:"fetch_token"`
	ProductID  string `json:"product_id,omitempty"`
}

// active reports whether the configured entitlement exists and has not
// expired. A null expiry is a lifetime purchase.
func (rc *RevenueCat) active(resp subscriberResponse) bool {
	ent, ok := resp.Subscriber.Entitlements[rc.cfg.Entitlement]
	if !ok {
		return false
	}
	return ent.ExpiresDate == nil || ent.ExpiresDate.After(rc.now())
}

// ── HTTP ────────────────────────────────────────────────────────────────────

const maxRetries = 2

func (rc *RevenueCat) subscriberPath(suffix string) string {
	return "/v1/subscribers/" + url.PathEscape(rc.cfg.AppUserID) + suffix
}

// do sends one API call, retrying transport failures and 5xx answers.
func (rc *RevenueCat) do(ctx context.Context, method, path string, body, out any) error {
	if rc.cfg.APIKey == "" || rc.cfg.AppUserID == "" {
		return &ProviderError{Reason: "api key and app user id are required", Wrapped: ErrUnavailable}
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		retry, err := rc.send(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

func (rc *RevenueCat) send(ctx context.Context, method, path string, payload []byte, out any) (retry bool, err error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rc.cfg.BaseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+rc.cfg.APIKey)
	req.Header.Set("X-Platform", rc.cfg.Platform)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rc.client.Do(req)
	if err != nil {
		return true, &ProviderError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return true, &ProviderError{Reason: "server error", StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		reason := "request rejected"
		if apiErr.Message != "" {
			reason = apiErr.Message
		}
		return false, &ProviderError{Reason: reason, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return false, &ProviderError{Reason: "invalid response", Wrapped: err}
	}
	return false, nil
}
