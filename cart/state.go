package cart

import (
	"time"

	"meraki/models"
)

// Pure transitions over a CartState value. Each returns a new state and leaves
// its input untouched; the only wall-clock inputs are the explicit now/id
// parameters, so given the same arguments the result is deterministic.

// AddItem increments the quantity of an existing item for the same product id,
// or appends a new item with AddedAt = now. A quantity below 1 is rejected and
// the state is returned unchanged.
func AddItem(state models.CartState, product models.Product, quantity int, now time.Time) models.CartState {
	if quantity < 1 {
		return state
	}

	items := cloneItems(state.Items)
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity // AddedAt preserved
			state.Items = items
			return state
		}
	}

	state.Items = append(items, models.CartItem{
		Product:  product,
		Quantity: quantity,
		AddedAt:  now,
	})
	return state
}

// RemoveItem deletes the item for productID; no-op when absent.
func RemoveItem(state models.CartState, productID int64) models.CartState {
	items := make([]models.CartItem, 0, len(state.Items))
	for _, it := range state.Items {
		if it.Product.ID != productID {
			items = append(items, it)
		}
	}
	state.Items = items
	return state
}

// UpdateQuantity sets the quantity for productID exactly. A quantity below 1
// removes the item, mirroring RemoveItem.
func UpdateQuantity(state models.CartState, productID int64, quantity int) models.CartState {
	if quantity < 1 {
		return RemoveItem(state, productID)
	}

	items := cloneItems(state.Items)
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
		}
	}
	state.Items = items
	return state
}

// ClearCart empties the items; purchase history is untouched.
func ClearCart(state models.CartState) models.CartState {
	state.Items = []models.CartItem{}
	return state
}

// CompletePurchase archives the current items as a Purchase and empties the
// cart in a single transition, so no reader can observe an emptied cart
// without the appended purchase. The archived items are a deep copy; later
// cart mutations cannot reach them.
func CompletePurchase(state models.CartState, total int64, id string, now time.Time) (models.CartState, models.Purchase) {
	purchase := models.Purchase{
		ID:           id,
		Items:        cloneItems(state.Items),
		Total:        total,
		Timestamp:    now,
		WhatsappSent: true,
	}

	purchases := make([]models.Purchase, 0, len(state.Purchases)+1)
	purchases = append(purchases, state.Purchases...)
	purchases = append(purchases, purchase)

	state.Items = []models.CartItem{}
	state.Purchases = purchases
	return state, purchase
}

// ClearPurchases empties the purchase history only.
func ClearPurchases(state models.CartState) models.CartState {
	state.Purchases = []models.Purchase{}
	return state
}

// Load installs a restored snapshot and marks the state loaded, which is what
// permits persistence writes from then on.
func Load(state models.CartState, items []models.CartItem, purchases []models.Purchase) models.CartState {
	if items == nil {
		items = []models.CartItem{}
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	state.Items = items
	state.Purchases = purchases
	state.Loaded = true
	return state
}

// cloneItems copies the item slice and the product's own slices, giving the
// caller a snapshot that shares nothing mutable with the original.
func cloneItems(items []models.CartItem) []models.CartItem {
	cloned := make([]models.CartItem, len(items))
	copy(cloned, items)
	for i := range cloned {
		cloned[i].Product.Highlights = append([]string(nil), cloned[i].Product.Highlights...)
		cloned[i].Product.Tags = append([]string(nil), cloned[i].Product.Tags...)
	}
	return cloned
}
