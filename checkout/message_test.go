package checkout

import (
	"net/url"
	"strings"
	"testing"

	"meraki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeOrderMessage(t *testing.T) {
	items := []models.CartItem{
		item("Silk Scarf", 2500, 2),
		item("Leather Belt", 1800, 1),
	}

	got := ComposeOrderMessage(items, 8023)

	assert.Equal(t,
		"Hi, I am interested in Silk Scarf (Qty: 2), Leather Belt (Qty: 1) with the cost ₹8,023.",
		got)
}

func TestComposeOrderMessageSingleItem(t *testing.T) {
	got := ComposeOrderMessage([]models.CartItem{item("Silk Scarf", 2500, 1)}, 2950)

	assert.Equal(t, "Hi, I am interested in Silk Scarf (Qty: 1) with the cost ₹2,950.", got)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+919789909362", "Hi, I am interested in Silk Scarf (Qty: 1) with the cost ₹2,950.")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919789909362?text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t,
		"Hi, I am interested in Silk Scarf (Qty: 1) with the cost ₹2,950.",
		parsed.Query().Get("text"))
}

func TestWhatsAppLinkKeepsBarePhone(t *testing.T) {
	link := WhatsAppLink("919789909362", "hello")
	assert.Equal(t, "https://wa.me/919789909362?text=hello", link)
}
