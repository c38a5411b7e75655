// internal/service/entitlement.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/purchases"
)

// EntitlementStatus is the access summary shown to the user.
type EntitlementStatus struct {
	Premium            bool
	StorePremium       bool
	PromoCode          string
	TrialStart         time.Time
	TrialDaysRemaining int
	TrialExpired       bool
	HasAccess          bool
}

// EntitlementService feeds store answers into the progress store. Provider
// failures leave the recorded entitlement unchanged.
type EntitlementService struct {
	progress *progress.Store
	provider purchases.Provider
	logger   *zap.Logger
}

func NewEntitlementService(store *progress.Store, provider purchases.Provider, logger *zap.Logger) *EntitlementService {
	return &EntitlementService{progress: store, provider: provider, logger: logger}
}

func (es *EntitlementService) Status() EntitlementStatus {
	e := es.progress.Entitlement()
	now := es.progress.Now()
	return EntitlementStatus{
		Premium:            e.Premium(),
		StorePremium:       e.StorePremium,
		PromoCode:          e.PromoCode,
		TrialStart:         e.TrialStart,
		TrialDaysRemaining: e.TrialDaysRemaining(now),
		TrialExpired:       e.TrialExpired(now),
		HasAccess:          e.HasAccess(now),
	}
}

// HasAccess reports whether gated features are available now.
func (es *EntitlementService) HasAccess() bool {
	return es.progress.Entitlement().HasAccess(es.progress.Now())
}

// Refresh asks the provider for the current entitlement.
func (es *EntitlementService) Refresh(ctx context.Context) (EntitlementStatus, error) {
	return es.apply(ctx, "refresh", func() (bool, error) {
		return es.provider.CheckEntitlement(ctx)
	})
}

func (es *EntitlementService) Restore(ctx context.Context) (EntitlementStatus, error) {
	return es.apply(ctx, "restore", func() (bool, error) {
		return es.provider.Restore(ctx)
	})
}

// Purchase only ever grants premium. A purchase that does not unlock it,
// such as a cancelled one, leaves the entitlement as it was.
func (es *EntitlementService) Purchase(ctx context.Context, req purchases.PurchaseRequest) (EntitlementStatus, error) {
	premium, err := es.provider.Purchase(ctx, req)
	if err != nil {
		es.logger.Error("entitlement check failed", zap.String("op", "purchase"), zap.Error(err))
		return es.Status(), err
	}
	if !premium {
		es.logger.Info("purchase did not unlock premium", zap.String("product_id", req.ProductID))
		return es.Status(), nil
	}
	return es.record(ctx, "purchase", true)
}

func (es *EntitlementService) Offerings(ctx context.Context) ([]purchases.Offering, error) {
	offerings, err := es.provider.ListOfferings(ctx)
	if err != nil {
		es.logger.Error("list offerings failed", zap.Error(err))
		return nil, err
	}
	return offerings, nil
}

func (es *EntitlementService) RedeemPromo(ctx context.Context, code string) (EntitlementStatus, error) {
	if err := es.progress.RedeemPromoCode(ctx, code); err != nil {
		return es.Status(), err
	}
	es.logger.Info("promo code redeemed", zap.String("code", es.progress.Entitlement().PromoCode))
	return es.Status(), nil
}

func (es *EntitlementService) ClearPromo(ctx context.Context) (EntitlementStatus, error) {
	if err := es.progress.ClearPromoCode(ctx); err != nil {
		return es.Status(), err
	}
	return es.Status(), nil
}

func (es *EntitlementService) apply(ctx context.Context, op string, call func() (bool, error)) (EntitlementStatus, error) {
	premium, err := call()
	if err != nil {
		es.logger.Error("entitlement check failed", zap.String("op", op), zap.Error(err))
		return es.Status(), err
	}
	return es.record(ctx, op, premium)
}

func (es *EntitlementService) record(ctx context.Context, op string, premium bool) (EntitlementStatus, error) {
	if err := es.progress.GrantEntitlement(ctx, premium); err != nil {
		return es.Status(), fmt.Errorf("record entitlement: %w", err)
	}
	es.logger.Info("entitlement updated", zap.String("op", op), zap.Bool("premium", premium))
	return es.Status(), nil
}
