package store

import (
	"fmt"
	"sync"

	"otakumart/internal/kvstore"
	"otakumart/internal/models"
)

// WishlistStore is one user's set of saved products, deduplicated by
// product id.
type WishlistStore struct {
	kv       kvstore.Store
	key      string
	mu       sync.RWMutex
	items    []models.Product
	notifier Notifier
}

func newWishlistStore(kv kvstore.Store, notifier Notifier, key string) (*WishlistStore, error) {
	s := &WishlistStore{kv: kv, key: key, notifier: notifier}
	if _, err := load(kv, key, &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

// WishlistStores hands out one wishlist per user, lazily loaded and cached,
// mirroring CartStores.
type WishlistStores struct {
	kv       kvstore.Store
	notifier Notifier
	mu       sync.Mutex
	byUser   map[string]*WishlistStore
}

func NewWishlistStores(kv kvstore.Store, notifier Notifier) *WishlistStores {
	return &WishlistStores{kv: kv, notifier: notifier, byUser: make(map[string]*WishlistStore)}
}

func (s *WishlistStores) For(userID string) (*WishlistStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wishlist, ok := s.byUser[userID]; ok {
		return wishlist, nil
	}
	wishlist, err := newWishlistStore(s.kv, s.notifier, keyWishlist+":"+userID)
	if err != nil {
		return nil, err
	}
	s.byUser[userID] = wishlist
	return wishlist, nil
}

// AddItem saves a product. An already-present product is a no-op with an
// informational notice instead of a duplicate entry.
func (s *WishlistStore) AddItem(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == product.ID {
			s.notifier.Info("Already saved", fmt.Sprintf("%s is already in your wishlist", product.Name))
			return nil
		}
	}

	s.items = append(s.items, product)
	if err := persist(s.kv, s.key, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	s.notifier.Success("Added to wishlist", fmt.Sprintf("Added %s to wishlist", product.Name))
	return nil
}

// RemoveItem deletes a saved product by id. Unknown ids are a silent no-op.
func (s *WishlistStore) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		name := s.items[i].Name
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := persist(s.kv, s.key, s.items); err != nil {
			return err
		}
		s.notifier.Success("Removed from wishlist", fmt.Sprintf("Removed %s from wishlist", name))
		return nil
	}
	return nil
}

// Contains reports whether a product is saved.
func (s *WishlistStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Clear empties the wishlist.
func (s *WishlistStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := persist(s.kv, s.key, []models.Product{}); err != nil {
		return err
	}
	s.notifier.Success("Wishlist cleared", "All items removed from wishlist")
	return nil
}

// Items returns the saved products.
func (s *WishlistStore) Items() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the number of saved products.
func (s *WishlistStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
