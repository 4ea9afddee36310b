package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"meraki/models"
)

// Tracker records completed purchases on the server, best effort. The
// user-facing contract is "cart cleared and message handed off", so the local
// transition never waits on this and its failure is swallowed.
type Tracker struct {
	URL    string
	Client *http.Client
}

func NewTracker(url string) *Tracker {
	return &Tracker{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Track posts the purchase to the tracking endpoint in the background.
func (t *Tracker) Track(purchase models.Purchase) {
	if t == nil || t.URL == "" {
		return
	}
	go func() {
		data, err := json.Marshal(purchase)
		if err != nil {
			log.Println("tracker: marshal purchase:", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(data))
		if err != nil {
			log.Println("tracker: build request:", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.Client.Do(req)
		if err != nil {
			log.Println("tracker: track purchase failed:", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			log.Println("tracker: track purchase status:", resp.Status)
		}
	}()
}
