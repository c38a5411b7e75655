package purchases

import (
	"context"
	"errors"
)

// ErrUnavailable is returned on platforms without an app store.
var ErrUnavailable = errors.New("purchases are not available on this platform")

// Provider is the entitlement collaborator. Boolean results report whether
// the premium entitlement is active afterwards.
type Provider interface {
	CheckEntitlement(ctx context.Context) (bool, error)
	ListOfferings(ctx context.Context) ([]Offering, error)
	Purchase(ctx context.Context, req PurchaseRequest) (bool, error)
	Restore(ctx context.Context) (bool, error)
}

// Offering is a set of purchasable packages.
type Offering struct {
	ID          string
	Description string
	Current     bool
	Packages    []Package
}

type Package struct {
	ID        string
	ProductID string
}

// PurchaseRequest carries the store receipt produced by the device.
type PurchaseRequest struct {
	ProductID  string
	FetchToken string
}

// Unavailable is the Provider used when no store is configured.
type Unavailable struct{}

var _ Provider = Unavailable{}

func (Unavailable) CheckEntitlement(context.Context) (bool, error) {
	return false, ErrUnavailable
}

func (Unavailable) ListOfferings(context.Context) ([]Offering, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Purchase(context.Context, PurchaseRequest) (bool, error) {
	return false, ErrUnavailable
}

func (Unavailable) Restore(context.Context) (bool, error) {
	return false, ErrUnavailable
}
