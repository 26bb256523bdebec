package kvstore

import (
	"path/filepath"
	"testing"

	"otakumart/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, found, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put("products", []byte(`[{"id":"product-1"}]`)))

	value, found, err := s.Get("products")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":"product-1"}]`, string(value))

	// Overwrite replaces the whole document.
	require.NoError(t, s.Put("products", []byte(`[]`)))
	value, found, err = s.Get("products")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, s.Delete("products"))
	_, found, err = s.Get("products")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("products"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	original := []byte("abc")
	require.NoError(t, s.Put("key", original))
	original[0] = 'x'

	value, found, err := s.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "abc", string(value))

	value[0] = 'y'
	again, _, err := s.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("orders", []byte(`["order-1"]`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get("orders")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `["order-1"]`, string(value))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s := NewRedis(mr.Addr(), "")
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpenSelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"memory", &config.Config{Storage: "memory"}},
		{"sqlite", &config.Config{Storage: "sqlite", DatabasePath: filepath.Join(t.TempDir(), "open.db")}},
		{"redis", &config.Config{Storage: "redis", RedisAddr: mr.Addr()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			require.NoError(t, err)
			defer s.Close()
			exerciseStore(t, s)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{Storage: "cassandra"})
	assert.Error(t, err)
}
