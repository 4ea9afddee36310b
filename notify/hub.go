package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"meraki/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one connected admin dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans tracked purchases out to every connected admin dashboard. One hub
// per process; Run owns the registration and broadcast loop.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes all client channels and ends the Run loop.
func (h *Hub) Stop() {
	close(h.done)
}

// purchaseEvent is what dashboards receive per tracked purchase.
type purchaseEvent struct {
	Action    string `json:"action"` // always "purchase"
	ID        string `json:"id"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"itemCount"`
	Timestamp int64  `json:"timestamp"` // unix seconds
}

// BroadcastPurchase pushes a compact purchase summary to all dashboards.
// Best effort: a stopped hub or absent listeners lose the event silently.
func (h *Hub) BroadcastPurchase(p models.Purchase) {
	out := purchaseEvent{
		Action:    "purchase",
		ID:        p.ID,
		Total:     p.Total,
		ItemCount: len(p.Items),
		Timestamp: p.Timestamp.Unix(),
	}
	data, err := json.Marshal(out)
	if err != nil {
		log.Println("notify: marshal purchase event:", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades an admin dashboard connection and attaches it to
// the hub. Auth happens in the middleware before the upgrade.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("notify upgrade:", err)
			return
		}
		client := &Client{
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only drains control frames; dashboards never send data.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
