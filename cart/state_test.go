package cart

import (
	"testing"
	"time"

	"meraki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price int64) models.Product {
	return models.Product{
		ID:     id,
		Handle: "product-" + string(rune('a'+id)),
		Title:  "Product",
		Price:  price,
		Tags:   []string{"luxury"},
	}
}

func TestAddItemAccumulatesSingleLine(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}

	state = AddItem(state, product(1, 1000), 2, now)
	state = AddItem(state, product(1, 1000), 3, now.Add(time.Minute))

	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
	// the first AddedAt wins
	assert.Equal(t, now, state.Items[0].AddedAt)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	state := models.CartState{Loaded: true}

	state = AddItem(state, product(1, 1000), 0, time.Now())
	assert.Empty(t, state.Items)

	state = AddItem(state, product(1, 1000), -3, time.Now())
	assert.Empty(t, state.Items)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}

	state = AddItem(state, product(2, 500), 1, now)
	state = AddItem(state, product(1, 1000), 1, now)
	state = AddItem(state, product(2, 500), 1, now)

	require.Len(t, state.Items, 2)
	assert.Equal(t, int64(2), state.Items[0].Product.ID)
	assert.Equal(t, int64(1), state.Items[1].Product.ID)
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}

	// add accumulates, update overwrites
	state = AddItem(state, product(1, 1000), 1, now)
	state = AddItem(state, product(1, 1000), 2, now)
	state = UpdateQuantity(state, 1, 1)

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	now := time.Now()

	base := models.CartState{Loaded: true}
	base = AddItem(base, product(1, 1000), 2, now)
	base = AddItem(base, product(2, 500), 1, now)

	updated := UpdateQuantity(base, 1, 0)
	removed := RemoveItem(base, 1)

	assert.Equal(t, removed.Items, updated.Items)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(2), updated.Items[0].Product.ID)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	state := models.CartState{Loaded: true}
	state = AddItem(state, product(1, 1000), 1, time.Now())

	state = RemoveItem(state, 42)
	assert.Len(t, state.Items, 1)
}

func TestClearCartKeepsPurchases(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}
	state = AddItem(state, product(1, 1000), 1, now)
	state, _ = CompletePurchase(state, 1180, "p-1", now)
	state = AddItem(state, product(2, 500), 1, now)

	state = ClearCart(state)
	assert.Empty(t, state.Items)
	assert.Len(t, state.Purchases, 1)
}

func TestCompletePurchaseIsAtomic(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}
	state = AddItem(state, product(1, 1000), 2, now)
	state = AddItem(state, product(2, 500), 1, now)
	snapshot := append([]models.CartItem{}, state.Items...)

	state, purchase := CompletePurchase(state, 2950, "p-1", now)

	assert.Empty(t, state.Items)
	require.Len(t, state.Purchases, 1)
	assert.Equal(t, purchase, state.Purchases[0])
	assert.Equal(t, snapshot, purchase.Items)
	assert.Equal(t, int64(2950), purchase.Total)
	assert.True(t, purchase.WhatsappSent)
	assert.Equal(t, "p-1", purchase.ID)
}

func TestCompletePurchaseArchivesDeepCopy(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}
	state = AddItem(state, product(1, 1000), 2, now)

	state, purchase := CompletePurchase(state, 2360, "p-1", now)

	// later cart activity must not reach the archived purchase
	state = AddItem(state, product(1, 1000), 9, now)
	state = UpdateQuantity(state, 1, 7)

	require.Len(t, purchase.Items, 1)
	assert.Equal(t, 2, purchase.Items[0].Quantity)
	assert.Equal(t, 2, state.Purchases[0].Items[0].Quantity)
}

func TestCompletePurchaseEmptyCart(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}

	state, purchase := CompletePurchase(state, 0, "p-1", now)

	assert.Empty(t, state.Items)
	require.Len(t, state.Purchases, 1)
	assert.Empty(t, purchase.Items)
	assert.Equal(t, int64(0), purchase.Total)
}

func TestClearPurchasesKeepsItems(t *testing.T) {
	now := time.Now()
	state := models.CartState{Loaded: true}
	state = AddItem(state, product(1, 1000), 1, now)
	state, _ = CompletePurchase(state, 1180, "p-1", now)
	state = AddItem(state, product(2, 500), 1, now)

	state = ClearPurchases(state)
	assert.Empty(t, state.Purchases)
	assert.Len(t, state.Items, 1)
}

func TestLoadMarksLoaded(t *testing.T) {
	state := Load(models.CartState{}, nil, nil)

	assert.True(t, state.Loaded)
	assert.NotNil(t, state.Items)
	assert.NotNil(t, state.Purchases)
}
