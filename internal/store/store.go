// Package store holds the domain state of the storefront: accounts and
// sessions, the product catalog, the cart, the wishlist, order history and
// reviews. Each store is an injectable service object constructed once at
// startup; every mutation is mirrored synchronously to the kvstore under the
// store's collection key, so a restart restores the latest state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"otakumart/internal/kvstore"
	"otakumart/internal/logger"
)

// Collection keys in the kvstore. One JSON document per collection.
const (
	keyUsers    = "users"
	keyUser     = "user"
	keySessions = "sessions"
	keyProducts = "products"
	keyCart     = "cart"
	keyWishlist = "wishlist"
	keyOrders   = "orders"
	keyReviews  = "reviews"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already taken")
	ErrNoCurrentUser      = errors.New("no user is signed in")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrInvalidPrice       = errors.New("product price must be greater than zero")
	ErrInvalidRating      = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyReviewed    = errors.New("product already reviewed by this user")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// persist marshals a collection and writes it under key.
func persist(kv kvstore.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// load reads a collection into dest. A missing key reports found=false; an
// unparseable value is discarded with a warning so the caller can fall back
// to seed data or an empty collection.
func load(kv kvstore.Store, key string, dest interface{}) (bool, error) {
	data, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Discarding unparseable collection", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}
