package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"otakumart/internal/config"
	"otakumart/internal/email"
	"otakumart/internal/kvstore"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	deps   *Deps
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:            "0",
		Environment:     "development",
		Storage:         "memory",
		AllowedOrigins:  "http://localhost:3000",
		SessionDuration: time.Hour,
		PaymentURL:      "https://pay.example.com/checkout",
	}

	kv := kvstore.NewMemory()
	notifier := store.NopNotifier{}

	sessions, err := store.NewSessionStore(kv, cfg.SessionDuration)
	require.NoError(t, err)
	catalog, err := store.NewCatalogStore(kv)
	require.NoError(t, err)
	orders, err := store.NewOrderStore(kv, notifier)
	require.NoError(t, err)
	reviews, err := store.NewReviewStore(kv, notifier)
	require.NoError(t, err)

	deps := &Deps{
		Config:    cfg,
		Sessions:  sessions,
		Catalog:   catalog,
		Carts:     store.NewCartStores(kv, notifier),
		Wishlists: store.NewWishlistStores(kv, notifier),
		Orders:    orders,
		Reviews:   reviews,
		Analytics: store.NewAggregator(reviews, catalog),
		Email:     email.NewService(cfg),
	}

	r := gin.New()
	SetupRoutes(r, deps)
	return &testServer{router: r, deps: deps}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register + login, capturing the session cookie for subsequent requests.
func (ts *testServer) signIn(t *testing.T, username, email, password string) {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/register", gin.H{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/login", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	res := w.Result()
	require.NotEmpty(t, res.Cookies())
	ts.cookie = res.Cookies()[0]
}

func (ts *testServer) signInAdmin(t *testing.T) {
	t.Helper()
	require.NoError(t, ts.deps.Sessions.SeedAdmin("admin", "admin@example.com", "adminpass123"))

	w := ts.do(t, http.MethodPost, "/api/login", gin.H{
		"username": "admin", "password": "adminpass123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	ts.cookie = w.Result().Cookies()[0]
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/register", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	ts := newTestServer(t)

	body := gin.H{"username": "alice", "email": "alice@example.com", "password": "password123"}
	w := ts.do(t, http.MethodPost, "/api/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")
	ts.cookie = nil

	w := ts.do(t, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestListProductsPublic(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Len(t, body["products"], 3)
}

func TestProductBySlug(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/products/slug/naruto-uzumaki-figure", nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "product-1", product["id"])

	w = ts.do(t, http.MethodGet, "/api/products/slug/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUpdateBoundToSessionUser(t *testing.T) {
	ts := newTestServer(t)

	ts.signIn(t, "alice", "alice@example.com", "password123")
	aliceCookie := ts.cookie

	// Bob signs in last, so his is the most recent login.
	ts.signIn(t, "bob", "bob@example.com", "password123")
	bobCookie := ts.cookie

	ts.cookie = aliceCookie
	w := ts.do(t, http.MethodPut, "/api/profile", gin.H{
		"username": "mallory", "email": "mallory@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "mallory", user["username"])

	// Bob's account is untouched and his session still resolves to bob.
	ts.cookie = bobCookie
	w = ts.do(t, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode(t, w)["user"].(map[string]interface{})["username"])
}

func TestPasswordUpdateBoundToSessionUser(t *testing.T) {
	ts := newTestServer(t)

	ts.signIn(t, "alice", "alice@example.com", "password123")
	aliceCookie := ts.cookie

	ts.signIn(t, "bob", "bob@example.com", "bobpassword1")

	// Alice's token changes alice's password, verified against her own
	// current password, not the most recent login's.
	ts.cookie = aliceCookie
	w := ts.do(t, http.MethodPut, "/api/password", gin.H{
		"currentPassword": "bobpassword1", "newPassword": "newpassword1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/password", gin.H{
		"currentPassword": "password123", "newPassword": "newpassword1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	ts.cookie = nil
	w = ts.do(t, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "newpassword1"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPost, "/api/login", gin.H{"username": "bob", "password": "bobpassword1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/cart", gin.H{"productId": "product-1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])

	// Same product merges instead of adding a second line.
	w = ts.do(t, http.MethodPost, "/api/cart", gin.H{"productId": "product-1", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["count"])
	assert.Len(t, body["items"], 1)

	w = ts.do(t, http.MethodPost, "/api/cart", gin.H{"productId": "product-missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartIsolatedPerUser(t *testing.T) {
	ts := newTestServer(t)

	ts.signIn(t, "alice", "alice@example.com", "password123")
	w := ts.do(t, http.MethodPost, "/api/cart", gin.H{"productId": "product-1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	ts.signIn(t, "bob", "bob@example.com", "password123")
	w = ts.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestWishlistFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/wishlist", gin.H{"productId": "product-2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	// Duplicate saves stay a single entry.
	w = ts.do(t, http.MethodPost, "/api/wishlist", gin.H{"productId": "product-2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = ts.do(t, http.MethodDelete, "/api/wishlist/product-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = ts.do(t, http.MethodPost, "/api/wishlist", gin.H{"productId": "product-1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodDelete, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/checkout", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/cart", gin.H{"productId": "product-1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/checkout", gin.H{
		"shippingAddress": gin.H{"name": "Alice", "city": "Tokyo"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "https://pay.example.com/checkout", body["paymentUrl"])

	order := body["order"].(map[string]interface{})
	// 2 x 59.99 = 119.98, tax 12.00, grand total 131.98.
	assert.InDelta(t, 119.98, order["total"].(float64), 0.001)
	assert.InDelta(t, 12.00, order["tax"].(float64), 0.001)
	assert.InDelta(t, 131.98, order["grandTotal"].(float64), 0.001)
	assert.Equal(t, "processing", order["status"])

	// Checkout clears the cart.
	w = ts.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = ts.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 1)
}

func TestBuyNow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/buy-now", gin.H{"productId": "product-3", "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decode(t, w)["order"].(map[string]interface{})
	assert.InDelta(t, 74.99, order["total"].(float64), 0.001)
}

func TestOrderOwnership(t *testing.T) {
	ts := newTestServer(t)

	// Seeding only works on an empty registry, so the admin goes first.
	ts.signInAdmin(t)
	adminCookie := ts.cookie

	ts.signIn(t, "alice", "alice@example.com", "password123")
	w := ts.do(t, http.MethodPost, "/api/buy-now", gin.H{"productId": "product-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode(t, w)["order"].(map[string]interface{})["id"].(string)
	aliceCookie := ts.cookie

	// Another user sees neither the order list entry nor the order itself.
	ts.signIn(t, "bob", "bob@example.com", "password123")
	w = ts.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 0)

	w = ts.do(t, http.MethodGet, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.cookie = aliceCookie
	w = ts.do(t, http.MethodGet, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Admins can inspect any order.
	ts.cookie = adminCookie
	w = ts.do(t, http.MethodGet, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/reviews", gin.H{
		"productId": "product-2", "rating": 5, "title": "Great", "comment": "Love it",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	review := decode(t, w)["review"].(map[string]interface{})
	reviewID := review["id"].(string)
	assert.Equal(t, "alice", review["userName"])

	// Second review for the same product by the same user is rejected.
	w = ts.do(t, http.MethodPost, "/api/reviews", gin.H{
		"productId": "product-2", "rating": 1, "title": "Again", "comment": "Nope",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPut, "/api/reviews/"+reviewID, gin.H{"rating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["review"].(map[string]interface{})
	assert.Equal(t, float64(4), updated["rating"])

	w = ts.do(t, http.MethodPost, "/api/reviews/"+reviewID+"/helpful", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/my-reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["reviews"], 1)
}

func TestReviewOwnership(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/reviews", gin.H{
		"productId": "product-2", "rating": 5, "title": "Great", "comment": "Love it",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := decode(t, w)["review"].(map[string]interface{})["id"].(string)

	// A different user cannot edit or delete alice's review.
	ts.signIn(t, "bob", "bob@example.com", "password123")

	w = ts.do(t, http.MethodPut, "/api/reviews/"+reviewID, gin.H{"rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/reviews/"+reviewID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiresRole(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminProductCRUD(t *testing.T) {
	ts := newTestServer(t)
	ts.signInAdmin(t)

	w := ts.do(t, http.MethodPost, "/api/admin/products", gin.H{
		"name": "Sailor Moon Wand Replica", "price": 39.99,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "sailor-moon-wand-replica", product["slug"])
	id := product["id"].(string)

	w = ts.do(t, http.MethodPost, "/api/admin/products", gin.H{"name": "Free", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/admin/products/"+id, gin.H{"name": "Renamed Wand"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "Renamed Wand", updated["name"])
	assert.Equal(t, "sailor-moon-wand-replica", updated["slug"])

	w = ts.do(t, http.MethodDelete, "/api/admin/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/admin/products/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.signInAdmin(t)

	w := ts.do(t, http.MethodPost, "/api/buy-now", gin.H{"productId": "product-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decode(t, w)["order"].(map[string]interface{})["id"].(string)

	w = ts.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shipped", decode(t, w)["order"].(map[string]interface{})["status"])

	w = ts.do(t, http.MethodPut, "/api/admin/orders/"+orderID+"/status", gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAnalytics(t *testing.T) {
	ts := newTestServer(t)
	ts.signInAdmin(t)

	w := ts.do(t, http.MethodGet, "/api/admin/analytics?window=1year&limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "summary")
	assert.Contains(t, body, "productRatings")

	w = ts.do(t, http.MethodGet, "/api/admin/analytics?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, "alice", "alice@example.com", "password123")

	w := ts.do(t, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Old cookie no longer validates.
	w = ts.do(t, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
