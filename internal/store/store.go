package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// KV is the device-local key-value persistence used by the progress store.
// Values are opaque strings; callers own the encoding.
type KV interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Apply writes every entry of b or none of them.
	Apply(ctx context.Context, b Batch) error
}

// Batch groups writes that must land together. Removes run after sets.
type Batch struct {
	Set    map[string]string
	Remove []string
}
