package storage

import (
	"context"

	"meraki/models"
)

// Adapter durably stores cart snapshots under two well-known keys per scope.
// It never owns state; it only serializes and deserializes on demand. A scope
// is one shopper session.
type Adapter interface {
	// Load returns the persisted snapshot, or empty slices when there is no
	// prior data. Corrupt payloads are treated as empty state, not errors.
	Load(ctx context.Context, scope string) (items []models.CartItem, purchases []models.Purchase, err error)
	SaveItems(ctx context.Context, scope string, items []models.CartItem) error
	SavePurchases(ctx context.Context, scope string, purchases []models.Purchase) error
}
