package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// User is an account record. PasswordHash never leaves the session store.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	Image            string   `json:"image"`
	Slug             string   `json:"slug"`
	Category         string   `json:"category"`
	Series           string   `json:"series"`
	Description      string   `json:"description,omitempty"`
	Features         []string `json:"features,omitempty"`
	ModelPath        string   `json:"modelPath,omitempty"`
	AdditionalImages []string `json:"additionalImages,omitempty"`
}

// CartItem is one cart line. At most one line exists per product; adding an
// already-present product increments Quantity instead of appending.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// OrderItem is a by-value snapshot of a product at purchase time. Later
// catalog edits never change it.
type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId,omitempty"`
	Items           []OrderItem      `json:"items"`
	Total           float64          `json:"total"`
	Tax             float64          `json:"tax"`
	Shipping        float64          `json:"shipping"`
	GrandTotal      float64          `json:"grandTotal"`
	Date            time.Time        `json:"date"`
	Status          OrderStatus      `json:"status"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

type Review struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"productId"`
	UserID             string    `json:"userId"`
	UserName           string    `json:"userName"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	Date               time.Time `json:"date"`
	Helpful            int       `json:"helpful"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase"`
	UserAvatar         string    `json:"userAvatar,omitempty"`
}

// Session maps an opaque token to a user for the HTTP surface.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
