package store

import (
	"fmt"
	"sync"

	"otakumart/internal/kvstore"
	"otakumart/internal/models"

	"github.com/google/uuid"
)

// CartStore holds one cart's lines, one per distinct product. Every
// mutation surfaces a notification naming the affected product.
type CartStore struct {
	kv       kvstore.Store
	key      string
	mu       sync.RWMutex
	items    []models.CartItem
	notifier Notifier
}

func newCartStore(kv kvstore.Store, notifier Notifier, key string) (*CartStore, error) {
	s := &CartStore{kv: kv, key: key, notifier: notifier}
	if _, err := load(kv, key, &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

// CartStores hands out one cart per user, each persisted under its own
// key. Carts load lazily on first use and stay cached for the process
// lifetime, so every request for the same user sees the same instance.
type CartStores struct {
	kv       kvstore.Store
	notifier Notifier
	mu       sync.Mutex
	byUser   map[string]*CartStore
}

func NewCartStores(kv kvstore.Store, notifier Notifier) *CartStores {
	return &CartStores{kv: kv, notifier: notifier, byUser: make(map[string]*CartStore)}
}

func (s *CartStores) For(userID string) (*CartStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.byUser[userID]; ok {
		return cart, nil
	}
	cart, err := newCartStore(s.kv, s.notifier, keyCart+":"+userID)
	if err != nil {
		return nil, err
	}
	s.byUser[userID] = cart
	return cart, nil
}

// AddItem merges by product id: an already-carted product gets its quantity
// incremented in place, otherwise a new line is appended. Quantities below
// one are treated as one.
func (s *CartStore) AddItem(product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			if err := persist(s.kv, s.key, s.items); err != nil {
				s.items[i].Quantity -= quantity
				return err
			}
			s.notifier.Success("Cart updated", fmt.Sprintf("Updated quantity for %s", product.Name))
			return nil
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:        "cart-item-" + uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	})

	if err := persist(s.kv, s.key, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	s.notifier.Success("Added to cart", fmt.Sprintf("Added %s to cart", product.Name))
	return nil
}

// RemoveItem deletes a cart line by its cart-item id. Unknown ids are a
// silent no-op.
func (s *CartStore) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

func (s *CartStore) removeLocked(id string) error {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		name := s.items[i].Name
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := persist(s.kv, s.key, s.items); err != nil {
			return err
		}
		s.notifier.Success("Removed from cart", fmt.Sprintf("Removed %s from cart", name))
		return nil
	}
	return nil
}

// UpdateQuantity sets a line's quantity. Anything below one removes the
// line; a non-positive quantity is never stored.
func (s *CartStore) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.removeLocked(id)
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return persist(s.kv, s.key, s.items)
		}
	}
	return nil
}

// Clear empties the cart wholesale.
func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := persist(s.kv, s.key, []models.CartItem{}); err != nil {
		return err
	}
	s.notifier.Success("Cart cleared", "All items removed from cart")
	return nil
}

// Items returns the cart lines.
func (s *CartStore) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of line quantities.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity across lines.
func (s *CartStore) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
