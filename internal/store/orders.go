package store

import (
	"math"
	"sync"
	"time"

	"otakumart/internal/kvstore"
	"otakumart/internal/models"

	"github.com/google/uuid"
)

// TaxRate is the flat tax applied to every order subtotal.
const TaxRate = 0.10

// defaultPaymentMethod is a placeholder: the payment handoff is an outbound
// link with no callback, so no real method is recorded.
const defaultPaymentMethod = "Credit Card"

// OrderStore holds order history, newest first, each order stamped with
// the buyer's user id. Orders snapshot their line items by value at
// creation and are never mutated afterwards except for the admin-driven
// status transition.
type OrderStore struct {
	kv       kvstore.Store
	mu       sync.RWMutex
	orders   []models.Order
	notifier Notifier
}

func NewOrderStore(kv kvstore.Store, notifier Notifier) (*OrderStore, error) {
	s := &OrderStore{kv: kv, notifier: notifier}
	if _, err := load(kv, keyOrders, &s.orders); err != nil {
		return nil, err
	}
	return s, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *OrderStore) create(userID string, items []models.OrderItem, subtotal float64, address *models.ShippingAddress) (models.Order, error) {
	tax := round2(subtotal * TaxRate)
	shipping := 0.0

	order := models.Order{
		ID:              "order-" + uuid.New().String(),
		UserID:          userID,
		Items:           items,
		Total:           subtotal,
		Tax:             tax,
		Shipping:        shipping,
		GrandTotal:      subtotal + tax + shipping,
		Date:            time.Now().UTC(),
		Status:          models.OrderProcessing,
		PaymentMethod:   defaultPaymentMethod,
		ShippingAddress: address,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Prepend: history is newest first. The append is rolled back if the
	// write fails, so callers observe the whole order or nothing.
	s.orders = append([]models.Order{order}, s.orders...)
	if err := persist(s.kv, keyOrders, s.orders); err != nil {
		s.orders = s.orders[1:]
		return models.Order{}, err
	}

	s.notifier.Success("Order placed", "Order placed successfully!")
	return order, nil
}

// CreateOrder snapshots the given cart lines into an immutable order owned
// by userID.
func (s *OrderStore) CreateOrder(userID string, items []models.CartItem, address *models.ShippingAddress) (models.Order, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	subtotal := 0.0
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ID:        "order-item-" + uuid.New().String(),
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
		subtotal += item.Price * float64(item.Quantity)
	}

	return s.create(userID, orderItems, subtotal, address)
}

// CreateSingleItemOrder is the buy-now path: one line derived directly from
// a product, bypassing the cart.
func (s *OrderStore) CreateSingleItemOrder(userID string, product models.Product, quantity int) (models.Order, error) {
	if quantity < 1 {
		quantity = 1
	}

	items := []models.OrderItem{{
		ID:        "order-item-" + uuid.New().String(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	}}

	return s.create(userID, items, product.Price*float64(quantity), nil)
}

// Orders returns the whole history across users, newest first. Admin and
// analytics consumer; regular callers go through OrdersFor.
func (s *OrderStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrdersFor returns one user's history, newest first.
func (s *OrderStore) OrdersFor(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out
}

// OrderByID performs an exact-match lookup.
func (s *OrderStore) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.Order{}, false
}

// UpdateStatus moves an order through processing/shipped/delivered. Unknown
// order ids are a silent no-op.
func (s *OrderStore) UpdateStatus(id string, status models.OrderStatus) error {
	switch status {
	case models.OrderProcessing, models.OrderShipped, models.OrderDelivered:
	default:
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return persist(s.kv, keyOrders, s.orders)
		}
	}
	return nil
}
