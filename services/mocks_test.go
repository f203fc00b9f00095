package services

import (
	"context"
	"sync"

	"brew-commerce/models"
	"brew-commerce/store"
)

// memCartStore is an in-memory CartStore.
type memCartStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
	err   error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string][]models.CartItem)}
}

func (m *memCartStore) Get(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	items, ok := m.carts[userID]
	if !ok {
		return nil, store.ErrCartNotFound
	}
	copied := make([]models.CartItem, len(items))
	copy(copied, items)
	return &models.Cart{UserID: userID, Items: copied}, nil
}

func (m *memCartStore) SetItems(_ context.Context, userID string, items []models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := make([]models.CartItem, len(items))
	copy(copied, items)
	m.carts[userID] = copied
	return nil
}

func (m *memCartStore) Clear(ctx context.Context, userID string) error {
	return m.SetItems(ctx, userID, []models.CartItem{})
}

func (m *memCartStore) items(userID string) []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[userID]
}

// memWishlistStore is an in-memory WishlistStore.
type memWishlistStore struct {
	mu        sync.Mutex
	wishlists map[string][]models.WishlistItem
}

func newMemWishlistStore() *memWishlistStore {
	return &memWishlistStore{wishlists: make(map[string][]models.WishlistItem)}
}

func (m *memWishlistStore) Get(_ context.Context, userID string) (*models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.wishlists[userID]
	if !ok {
		return nil, store.ErrWishlistNotFound
	}
	copied := make([]models.WishlistItem, len(items))
	copy(copied, items)
	return &models.Wishlist{UserID: userID, Items: copied}, nil
}

func (m *memWishlistStore) SetItems(_ context.Context, userID string, items []models.WishlistItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]models.WishlistItem, len(items))
	copy(copied, items)
	m.wishlists[userID] = copied
	return nil
}

func (m *memWishlistStore) items(userID string) []models.WishlistItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wishlists[userID]
}

// memOrderLedger is an in-memory OrderLedger. Orders keeps insertion order,
// newest last.
type memOrderLedger struct {
	mu     sync.Mutex
	orders []models.Order
}

func newMemOrderLedger() *memOrderLedger {
	return &memOrderLedger{}
}

func (m *memOrderLedger) Insert(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrderLedger) Latest(_ context.Context) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.orders) == 0 {
		return nil, store.ErrOrderNotFound
	}
	latest := m.orders[len(m.orders)-1]
	return &latest, nil
}

func (m *memOrderLedger) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].Email == email {
			found = append(found, m.orders[i])
		}
	}
	return found, nil
}

func (m *memOrderLedger) FindAll(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.Order, 0, len(m.orders))
	for i := len(m.orders) - 1; i >= 0; i-- {
		all = append(all, m.orders[i])
	}
	return all, nil
}

func (m *memOrderLedger) FindByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			order := m.orders[i]
			return &order, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

func (m *memOrderLedger) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return store.ErrOrderNotFound
}

func (m *memOrderLedger) Cancel(_ context.Context, id string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			m.orders[i].Status = models.OrderStatusCancelled
			m.orders[i].CancelReason = reason
			for j := range m.orders[i].Items {
				m.orders[i].Items[j].Status = models.OrderStatusCancelled
			}
			return nil
		}
	}
	return store.ErrOrderNotFound
}

func (m *memOrderLedger) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.orders)), nil
}

func (m *memOrderLedger) Recent(_ context.Context, n int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recent := make([]models.Order, 0, n)
	for i := len(m.orders) - 1; i >= 0 && int64(len(recent)) < n; i-- {
		recent = append(recent, m.orders[i])
	}
	return recent, nil
}

func (m *memOrderLedger) get(id string) *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			order := m.orders[i]
			return &order
		}
	}
	return nil
}

// stubIdentity resolves every user id to one fixed identity.
type stubIdentity struct {
	identity *models.Identity
	err      error
}

func (s *stubIdentity) Resolve(context.Context, string) (*models.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

// mockMailer records confirmation sends.
type mockMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  error
	calls int
}

func (m *mockMailer) SendOrderConfirmation(to string, _ *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *mockMailer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
