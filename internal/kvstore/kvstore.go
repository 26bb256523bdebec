// Package kvstore is the persistence boundary for the domain stores: one
// JSON document per logical collection, addressed by key. Swapping the
// backend never touches store logic.
package kvstore

import (
	"fmt"

	"otakumart/internal/config"
)

// Store is a key/value table holding one JSON blob per collection key
// ("users", "products", "cart", "orders", "reviews", ...).
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open builds the backend selected by cfg.Storage.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Storage {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(cfg.DatabasePath)
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
