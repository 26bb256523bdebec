package handlers

import (
	"net/http"

	"otakumart/internal/logger"
	"otakumart/internal/models"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
}

// handleCheckout snapshots the caller's cart into an order, clears the cart
// and hands the client the payment URL. The payment step is an outbound
// link with no callback, so the order starts in processing regardless.
func handleCheckout(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload"})
			return
		}

		user := c.MustGet("user").(models.User)
		cart, ok := userCart(c, deps)
		if !ok {
			return
		}

		items := cart.Items()
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		order, err := deps.Orders.CreateOrder(user.ID, items, req.ShippingAddress)
		if err != nil {
			logger.Error("Checkout failed", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		if err := cart.Clear(); err != nil {
			logger.Warn("Failed to clear cart after checkout", "order_id", order.ID, "error", err)
		}

		if deps.Email.IsEnabled() {
			go func() {
				if err := deps.Email.SendOrderConfirmation(user, order); err != nil {
					logger.Warn("Failed to send order confirmation", "email", user.Email, "error", err)
				}
			}()
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":      order,
			"paymentUrl": deps.Config.PaymentURL,
		})
	}
}

type buyNowRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// handleBuyNow places a single-item order straight from a product page,
// bypassing the cart entirely.
func handleBuyNow(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req buyNowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product id is required"})
			return
		}

		product, found := deps.Catalog.Product(req.ProductID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		user := c.MustGet("user").(models.User)
		order, err := deps.Orders.CreateSingleItemOrder(user.ID, product, req.Quantity)
		if err != nil {
			logger.Error("Buy-now failed", "product_id", req.ProductID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		if deps.Email.IsEnabled() {
			go func() {
				if err := deps.Email.SendOrderConfirmation(user, order); err != nil {
					logger.Warn("Failed to send order confirmation", "email", user.Email, "error", err)
				}
			}()
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":      order,
			"paymentUrl": deps.Config.PaymentURL,
		})
	}
}

func handleListOrders(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"orders": deps.Orders.OrdersFor(user.ID)})
	}
}

// handleGetOrder serves an order to its owner or an admin. Anyone else gets
// the same 404 as a nonexistent id.
func handleGetOrder(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, found := deps.Orders.OrderByID(c.Param("id"))
		user := c.MustGet("user").(models.User)
		if !found || (order.UserID != user.ID && user.Role != models.RoleAdmin) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
