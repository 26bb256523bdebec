package handlers

import (
	"net/http"

	"otakumart/internal/logger"
	"otakumart/internal/models"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

type addToWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// userWishlist resolves the authenticated user's own wishlist. On failure
// the response is already written.
func userWishlist(c *gin.Context, deps *Deps) (*store.WishlistStore, bool) {
	user := c.MustGet("user").(models.User)
	wishlist, err := deps.Wishlists.For(user.ID)
	if err != nil {
		logger.Error("Failed to load wishlist", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return nil, false
	}
	return wishlist, true
}

func handleGetWishlist(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishlist, ok := userWishlist(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": wishlist.Items(),
			"count": wishlist.ItemCount(),
		})
	}
}

func handleAddToWishlist(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product id is required"})
			return
		}

		product, found := deps.Catalog.Product(req.ProductID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		wishlist, ok := userWishlist(c, deps)
		if !ok {
			return
		}

		if err := wishlist.AddItem(product); err != nil {
			logger.Error("Failed to add to wishlist", "product_id", req.ProductID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": wishlist.Items(), "count": wishlist.ItemCount()})
	}
}

func handleClearWishlist(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishlist, ok := userWishlist(c, deps)
		if !ok {
			return
		}
		if err := wishlist.Clear(); err != nil {
			logger.Error("Failed to clear wishlist", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": wishlist.Items(), "count": 0})
	}
}

func handleRemoveFromWishlist(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishlist, ok := userWishlist(c, deps)
		if !ok {
			return
		}
		if err := wishlist.RemoveItem(c.Param("id")); err != nil {
			logger.Error("Failed to remove wishlist item", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": wishlist.Items(), "count": wishlist.ItemCount()})
	}
}
