package handlers

import (
	"net/http"

	"otakumart/internal/logger"
	"otakumart/internal/models"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// userCart resolves the authenticated user's own cart. On failure the
// response is already written.
func userCart(c *gin.Context, deps *Deps) (*store.CartStore, bool) {
	user := c.MustGet("user").(models.User)
	cart, err := deps.Carts.For(user.ID)
	if err != nil {
		logger.Error("Failed to load cart", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return nil, false
	}
	return cart, true
}

func handleGetCart(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := userCart(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    cart.Items(),
			"count":    cart.ItemCount(),
			"subtotal": cart.Subtotal(),
		})
	}
}

func handleAddToCart(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product id is required"})
			return
		}

		product, found := deps.Catalog.Product(req.ProductID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		cart, ok := userCart(c, deps)
		if !ok {
			return
		}

		if err := cart.AddItem(product, req.Quantity); err != nil {
			logger.Error("Failed to add to cart", "product_id", req.ProductID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "count": cart.ItemCount()})
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func handleUpdateCartQuantity(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
			return
		}

		cart, ok := userCart(c, deps)
		if !ok {
			return
		}

		if err := cart.UpdateQuantity(c.Param("id"), req.Quantity); err != nil {
			logger.Error("Failed to update cart quantity", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "count": cart.ItemCount()})
	}
}

func handleRemoveFromCart(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := userCart(c, deps)
		if !ok {
			return
		}
		if err := cart.RemoveItem(c.Param("id")); err != nil {
			logger.Error("Failed to remove cart item", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "count": cart.ItemCount()})
	}
}

func handleClearCart(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := userCart(c, deps)
		if !ok {
			return
		}
		if err := cart.Clear(); err != nil {
			logger.Error("Failed to clear cart", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "count": 0})
	}
}
