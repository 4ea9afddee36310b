package storage

import (
	"encoding/json"
	"testing"
	"time"

	"meraki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItemsRoundTrip(t *testing.T) {
	items := []models.CartItem{
		{Product: models.Product{ID: 1, Title: "Silk Scarf", Price: 2500}, Quantity: 2, AddedAt: time.Now().UTC()},
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)

	got := decodeItems(data)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Product.ID)
	assert.Equal(t, 2, got[0].Quantity)
}

func TestDecodeItemsCorruptPayload(t *testing.T) {
	for _, data := range [][]byte{
		[]byte(`not json`),
		[]byte(`{"a cart": "is not an object"}`),
		[]byte(`42`),
	} {
		got := decodeItems(data)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDecodeItemsDropsInvalidQuantities(t *testing.T) {
	data := []byte(`[
		{"product":{"id":1,"price":100},"quantity":2},
		{"product":{"id":2,"price":100},"quantity":0},
		{"product":{"id":3,"price":100},"quantity":-4}
	]`)

	got := decodeItems(data)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Product.ID)
}

func TestDecodePurchasesCorruptPayload(t *testing.T) {
	got := decodePurchases([]byte(`{broken`))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodePurchasesRoundTrip(t *testing.T) {
	purchases := []models.Purchase{
		{ID: "p-1", Total: 2950, Timestamp: time.Now().UTC(), WhatsappSent: true},
	}
	data, err := json.Marshal(purchases)
	require.NoError(t, err)

	got := decodePurchases(data)

	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ID)
	assert.True(t, got[0].WhatsappSent)
}
