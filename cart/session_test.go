package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"meraki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	mu             sync.Mutex
	items          map[string][]models.CartItem
	purchases      map[string][]models.Purchase
	loadErr        error
	itemSaves      int
	purchaseSaves  int
	loadsCompleted int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		items:     make(map[string][]models.CartItem),
		purchases: make(map[string][]models.Purchase),
	}
}

func (f *fakeAdapter) Load(_ context.Context, scope string) ([]models.CartItem, []models.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, nil, f.loadErr
	}
	f.loadsCompleted++
	return f.items[scope], f.purchases[scope], nil
}

func (f *fakeAdapter) SaveItems(_ context.Context, scope string, items []models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemSaves++
	f.items[scope] = items
	return nil
}

func (f *fakeAdapter) SavePurchases(_ context.Context, scope string, purchases []models.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchaseSaves++
	f.purchases[scope] = purchases
	return nil
}

func TestSessionRestoresBeforeFirstWrite(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	adapter.items["s1"] = []models.CartItem{
		{Product: product(7, 2000), Quantity: 1, AddedAt: time.Now()},
	}

	manager := NewManager(adapter)
	session := manager.Get("s1")

	state := session.AddItem(ctx, product(1, 1000), 1)

	// prior snapshot survived the first mutation instead of being overwritten
	require.Len(t, state.Items, 2)
	assert.Equal(t, int64(7), state.Items[0].Product.ID)
	assert.Equal(t, int64(1), state.Items[1].Product.ID)
	require.Len(t, adapter.items["s1"], 2)
	assert.Equal(t, 1, adapter.loadsCompleted)
}

func TestSessionLoadsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	manager := NewManager(adapter)
	session := manager.Get("s1")

	session.AddItem(ctx, product(1, 1000), 1)
	session.AddItem(ctx, product(2, 500), 1)
	session.Snapshot(ctx)

	assert.Equal(t, 1, adapter.loadsCompleted)
	assert.Equal(t, 2, adapter.itemSaves)
}

func TestSessionFailedLoadStartsEmpty(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	adapter.loadErr = errors.New("redis down")
	manager := NewManager(adapter)

	state := manager.Get("s1").Snapshot(ctx)
	assert.Empty(t, state.Items)
	assert.Empty(t, state.Purchases)
}

func TestSessionCompletePurchasePersistsBothKeys(t *testing.T) {
	ctx := context.Background()
	adapter := newFakeAdapter()
	manager := NewManager(adapter)
	session := manager.Get("s1")

	session.AddItem(ctx, product(1, 1000), 2)
	purchase := session.CompletePurchase(ctx, 2360)

	assert.NotEmpty(t, purchase.ID)
	assert.True(t, purchase.WhatsappSent)
	assert.Empty(t, adapter.items["s1"])
	require.Len(t, adapter.purchases["s1"], 1)
	assert.Equal(t, purchase.ID, adapter.purchases["s1"][0].ID)
}

func TestSessionSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(newFakeAdapter())
	session := manager.Get("s1")

	session.AddItem(ctx, product(1, 1000), 2)
	snapshot := session.Snapshot(ctx)
	snapshot.Items[0].Quantity = 99

	state := session.Snapshot(ctx)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestManagerReturnsSameSessionPerScope(t *testing.T) {
	manager := NewManager(newFakeAdapter())
	assert.Same(t, manager.Get("a"), manager.Get("a"))
	assert.NotSame(t, manager.Get("a"), manager.Get("b"))
}
