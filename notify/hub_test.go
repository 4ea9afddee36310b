package notify

import (
	"encoding/json"
	"testing"
	"time"

	"meraki/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	purchase := models.Purchase{
		ID:    "p-1",
		Total: 2950,
		Items: []models.CartItem{
			{Product: models.Product{ID: 1}, Quantity: 2},
		},
		Timestamp: time.Unix(1700000000, 0),
	}
	hub.BroadcastPurchase(purchase)

	select {
	case got := <-client.Send:
		var event purchaseEvent
		if err := json.Unmarshal(got, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Action != "purchase" {
			t.Fatalf("expected purchase action, got %q", event.Action)
		}
		if event.ID != "p-1" || event.Total != 2950 || event.ItemCount != 1 {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.Timestamp != 1700000000 {
			t.Fatalf("unexpected timestamp: %d", event.Timestamp)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.BroadcastPurchase(models.Purchase{ID: "p-2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("broadcast blocked after stop")
	}
}
