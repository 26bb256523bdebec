package store

import (
	"testing"

	"otakumart/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWishlist(t *testing.T, kv kvstore.Store) *WishlistStore {
	t.Helper()
	s, err := newWishlistStore(kv, NopNotifier{}, keyWishlist)
	require.NoError(t, err)
	return s
}

func TestWishlistAddAndContains(t *testing.T) {
	s := newTestWishlist(t, kvstore.NewMemory())

	require.NoError(t, s.AddItem(testProduct("product-1", "A", 10)))
	assert.True(t, s.Contains("product-1"))
	assert.False(t, s.Contains("product-2"))
	assert.Equal(t, 1, s.ItemCount())
}

func TestWishlistDeduplicates(t *testing.T) {
	s := newTestWishlist(t, kvstore.NewMemory())
	recorder := &recordingNotifier{}
	s.notifier = recorder

	p := testProduct("product-1", "Naruto Uzumaki Figure", 59.99)
	require.NoError(t, s.AddItem(p))
	require.NoError(t, s.AddItem(p))

	assert.Equal(t, 1, s.ItemCount())
	require.Len(t, recorder.entries, 2)
	assert.Equal(t, "info", recorder.entries[1].kind)
	assert.Contains(t, recorder.entries[1].description, "already in your wishlist")
}

func TestWishlistRemove(t *testing.T) {
	s := newTestWishlist(t, kvstore.NewMemory())

	require.NoError(t, s.AddItem(testProduct("product-1", "A", 10)))
	require.NoError(t, s.RemoveItem("product-1"))
	assert.False(t, s.Contains("product-1"))
	assert.Empty(t, s.Items())

	require.NoError(t, s.RemoveItem("product-missing"))
}

func TestWishlistClear(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newTestWishlist(t, kv)

	require.NoError(t, s.AddItem(testProduct("product-1", "A", 10)))
	require.NoError(t, s.AddItem(testProduct("product-2", "B", 20)))
	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.ItemCount())

	restarted := newTestWishlist(t, kv)
	assert.Empty(t, restarted.Items())
}

func TestWishlistSurvivesRestart(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newTestWishlist(t, kv)
	require.NoError(t, s.AddItem(testProduct("product-1", "A", 10)))

	restarted := newTestWishlist(t, kv)
	assert.True(t, restarted.Contains("product-1"))
}

func TestWishlistStoresIsolatePerUser(t *testing.T) {
	kv := kvstore.NewMemory()
	stores := NewWishlistStores(kv, NopNotifier{})

	alice, err := stores.For("user-alice")
	require.NoError(t, err)
	bob, err := stores.For("user-bob")
	require.NoError(t, err)

	require.NoError(t, alice.AddItem(testProduct("product-1", "A", 10)))

	assert.True(t, alice.Contains("product-1"))
	assert.False(t, bob.Contains("product-1"))
	assert.Equal(t, 0, bob.ItemCount())

	restarted, err := NewWishlistStores(kv, NopNotifier{}).For("user-alice")
	require.NoError(t, err)
	assert.True(t, restarted.Contains("product-1"))
}
