package checkout

import (
	"strconv"

	"meraki/models"
)

// Pricing constants, in minor currency units. FallbackUnitPrice is the single
// named default applied when a product reaches the cart without a valid price.
const (
	TaxRatePercent        = 18
	ShippingFee           = 499
	FreeShippingThreshold = 4000
	FallbackUnitPrice     = 1249
)

// Totals is the order summary for a set of cart items. Shipping is a quoted
// estimate only: the supplier collects it on delivery, so the amount handed
// off over WhatsApp is subtotal + tax.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals derives the one authoritative order summary. Tax is rounded
// to the nearest unit in integer arithmetic.
func ComputeTotals(items []models.CartItem) Totals {
	var subtotal int64
	for _, it := range items {
		price := it.Product.Price
		if price <= 0 {
			price = FallbackUnitPrice
		}
		subtotal += int64(it.Quantity) * price
	}

	tax := (subtotal*TaxRatePercent + 50) / 100

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: EstimateShipping(subtotal),
		Total:    subtotal + tax,
	}
}

// EstimateShipping quotes the delivery fee for a subtotal; orders above the
// free-shipping threshold ship free.
func EstimateShipping(subtotal int64) int64 {
	if subtotal > 0 && subtotal <= FreeShippingThreshold {
		return ShippingFee
	}
	return 0
}

// FormatINR renders an amount with Indian digit grouping (12,34,567).
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var grouped string
		for len(head) > 2 {
			grouped = "," + head[len(head)-2:] + grouped
			head = head[:len(head)-2]
		}
		s = head + grouped + "," + tail
	}

	if neg {
		return "-" + s
	}
	return s
}
