package checkout

import (
	"testing"

	"meraki/models"

	"github.com/stretchr/testify/assert"
)

func item(title string, price int64, qty int) models.CartItem {
	return models.CartItem{
		Product:  models.Product{Title: title, Price: price},
		Quantity: qty,
	}
}

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{
		item("A", 1000, 2),
		item("B", 500, 1),
	}

	got := ComputeTotals(items)

	assert.Equal(t, int64(2500), got.Subtotal)
	assert.Equal(t, int64(450), got.Tax)
	assert.Equal(t, int64(499), got.Shipping)
	assert.Equal(t, int64(2950), got.Total)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil)

	assert.Equal(t, Totals{}, got)
}

func TestComputeTotalsFallbackPrice(t *testing.T) {
	items := []models.CartItem{
		item("no price", 0, 2),
		item("negative", -500, 1),
	}

	got := ComputeTotals(items)

	assert.Equal(t, int64(3*FallbackUnitPrice), got.Subtotal)
}

func TestComputeTotalsRoundsTax(t *testing.T) {
	// 18% of 1249 is 224.82; rounds to 225
	got := ComputeTotals([]models.CartItem{item("A", 1249, 1)})
	assert.Equal(t, int64(225), got.Tax)

	// 18% of 25 is 4.5; half rounds up
	got = ComputeTotals([]models.CartItem{item("B", 25, 1)})
	assert.Equal(t, int64(5), got.Tax)
}

func TestEstimateShipping(t *testing.T) {
	assert.Equal(t, int64(0), EstimateShipping(0))
	assert.Equal(t, int64(ShippingFee), EstimateShipping(1))
	assert.Equal(t, int64(ShippingFee), EstimateShipping(FreeShippingThreshold))
	assert.Equal(t, int64(0), EstimateShipping(FreeShippingThreshold+1))
}

func TestShippingNotCharged(t *testing.T) {
	got := ComputeTotals([]models.CartItem{item("A", 1000, 1)})

	assert.Equal(t, int64(ShippingFee), got.Shipping)
	assert.Equal(t, got.Subtotal+got.Tax, got.Total)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "0", FormatINR(0))
	assert.Equal(t, "999", FormatINR(999))
	assert.Equal(t, "2,950", FormatINR(2950))
	assert.Equal(t, "12,345", FormatINR(12345))
	assert.Equal(t, "1,23,456", FormatINR(123456))
	assert.Equal(t, "12,34,567", FormatINR(1234567))
	assert.Equal(t, "-1,23,456", FormatINR(-123456))
}
