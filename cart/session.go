package cart

import (
	"context"
	"log"
	"sync"
	"time"

	"meraki/models"
	"meraki/storage"

	"github.com/google/uuid"
)

// Session owns one shopper's CartState. All mutations run under the mutex and
// re-save through the adapter; saves are suppressed until the persisted
// snapshot has been restored once, so an empty initial state can never
// overwrite genuine prior data.
type Session struct {
	scope   string
	adapter storage.Adapter

	mu    sync.Mutex
	state models.CartState
}

func newSession(scope string, adapter storage.Adapter) *Session {
	return &Session{scope: scope, adapter: adapter}
}

// ensureLoaded restores the persisted snapshot on first use. Called with the
// mutex held. A failed load falls back to empty state rather than blocking
// the session; the source data stays untouched until the next save.
func (s *Session) ensureLoaded(ctx context.Context) {
	if s.state.Loaded {
		return
	}
	items, purchases, err := s.adapter.Load(ctx, s.scope)
	if err != nil {
		log.Printf("cart: load failed for %s, starting empty: %v", s.scope, err)
		items, purchases = nil, nil
	}
	s.state = Load(s.state, items, purchases)
}

func (s *Session) saveItems(ctx context.Context) {
	if !s.state.Loaded {
		return
	}
	if err := s.adapter.SaveItems(ctx, s.scope, s.state.Items); err != nil {
		log.Printf("cart: save items failed for %s: %v", s.scope, err)
	}
}

func (s *Session) savePurchases(ctx context.Context) {
	if !s.state.Loaded {
		return
	}
	if err := s.adapter.SavePurchases(ctx, s.scope, s.state.Purchases); err != nil {
		log.Printf("cart: save purchases failed for %s: %v", s.scope, err)
	}
}

// Snapshot returns a deep copy of the current state for reads.
func (s *Session) Snapshot(ctx context.Context) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return models.CartState{
		Items:     cloneItems(s.state.Items),
		Purchases: append([]models.Purchase{}, s.state.Purchases...),
		Loaded:    true,
	}
}

func (s *Session) AddItem(ctx context.Context, product models.Product, quantity int) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state = AddItem(s.state, product, quantity, time.Now())
	s.saveItems(ctx)
	return s.state
}

func (s *Session) RemoveItem(ctx context.Context, productID int64) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state = RemoveItem(s.state, productID)
	s.saveItems(ctx)
	return s.state
}

func (s *Session) UpdateQuantity(ctx context.Context, productID int64, quantity int) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state = UpdateQuantity(s.state, productID, quantity)
	s.saveItems(ctx)
	return s.state
}

func (s *Session) ClearCart(ctx context.Context) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state = ClearCart(s.state)
	s.saveItems(ctx)
	return s.state
}

// CompletePurchase archives the current items and clears the cart atomically,
// persisting both keys before releasing the lock.
func (s *Session) CompletePurchase(ctx context.Context, total int64) models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	var purchase models.Purchase
	s.state, purchase = CompletePurchase(s.state, total, uuid.NewString(), time.Now())
	s.saveItems(ctx)
	s.savePurchases(ctx)
	return purchase
}

func (s *Session) ClearPurchases(ctx context.Context) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state = ClearPurchases(s.state)
	s.savePurchases(ctx)
	return s.state
}

// Manager hands out sessions by scope id. Each browser session owns its own
// CartState; there is no shared cart across scopes.
type Manager struct {
	adapter  storage.Adapter
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(adapter storage.Adapter) *Manager {
	return &Manager{
		adapter:  adapter,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for scope, creating it on first sight.
func (m *Manager) Get(scope string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[scope]; ok {
		return s
	}
	s := newSession(scope, m.adapter)
	m.sessions[scope] = s
	return s
}

// NewScope mints a fresh session id for clients that arrive without one.
func (m *Manager) NewScope() string {
	return uuid.NewString()
}
