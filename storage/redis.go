package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"meraki/models"
	"meraki/rdx"
)

const (
	cartKeyPrefix      = "meraki:cart:"
	purchasesKeyPrefix = "meraki:purchases:"

	// Abandoned carts expire; purchase history is kept longer.
	cartTTL      = 30 * 24 * time.Hour
	purchasesTTL = 365 * 24 * time.Hour
)

// RedisAdapter persists cart snapshots as JSON under two keys per scope.
type RedisAdapter struct {
	cache *rdx.Cache
}

func NewRedisAdapter(cache *rdx.Cache) *RedisAdapter {
	return &RedisAdapter{cache: cache}
}

func (a *RedisAdapter) Load(ctx context.Context, scope string) ([]models.CartItem, []models.Purchase, error) {
	items := []models.CartItem{}
	purchases := []models.Purchase{}

	data, err := a.cache.GetBytes(ctx, cartKeyPrefix+scope)
	switch {
	case err == nil:
		items = decodeItems(data)
	case !errors.Is(err, rdx.ErrCacheMiss):
		return nil, nil, err
	}

	data, err = a.cache.GetBytes(ctx, purchasesKeyPrefix+scope)
	switch {
	case err == nil:
		purchases = decodePurchases(data)
	case !errors.Is(err, rdx.ErrCacheMiss):
		return nil, nil, err
	}

	return items, purchases, nil
}

func (a *RedisAdapter) SaveItems(ctx context.Context, scope string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return a.cache.SetBytes(ctx, cartKeyPrefix+scope, data, cartTTL)
}

func (a *RedisAdapter) SavePurchases(ctx context.Context, scope string, purchases []models.Purchase) error {
	data, err := json.Marshal(purchases)
	if err != nil {
		return err
	}
	return a.cache.SetBytes(ctx, purchasesKeyPrefix+scope, data, purchasesTTL)
}

// decodeItems tolerates any malformed payload: a snapshot that does not parse
// is treated as no snapshot at all, so one bad write cannot poison a session.
func decodeItems(data []byte) []models.CartItem {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Println("storage: discarding corrupt cart snapshot:", err)
		return []models.CartItem{}
	}
	valid := items[:0]
	for _, it := range items {
		if it.Quantity >= 1 {
			valid = append(valid, it)
		}
	}
	if valid == nil {
		valid = []models.CartItem{}
	}
	return valid
}

func decodePurchases(data []byte) []models.Purchase {
	var purchases []models.Purchase
	if err := json.Unmarshal(data, &purchases); err != nil {
		log.Println("storage: discarding corrupt purchase history:", err)
		return []models.Purchase{}
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return purchases
}
