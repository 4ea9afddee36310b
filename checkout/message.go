package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"meraki/models"
)

// ComposeOrderMessage renders the human-readable summary handed off to the
// supplier's chat: "Hi, I am interested in <title> (Qty: n), ... with the
// cost ₹<total>.". Pure string formatting, no side effects.
func ComposeOrderMessage(items []models.CartItem, total int64) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s (Qty: %d)", it.Product.Title, it.Quantity))
	}
	return fmt.Sprintf("Hi, I am interested in %s with the cost ₹%s.",
		strings.Join(lines, ", "), FormatINR(total))
}

// WhatsAppLink builds the wa.me deep link carrying the pre-filled message.
// The messaging channel is an external collaborator; no response is consumed.
func WhatsAppLink(phone, message string) string {
	phone = strings.TrimPrefix(phone, "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
