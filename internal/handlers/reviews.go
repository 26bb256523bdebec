package handlers

import (
	"errors"
	"net/http"

	"otakumart/internal/logger"
	"otakumart/internal/models"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

type addReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// hasPurchased reports whether the user's own order history contains the
// product, which drives the verified-purchase badge on new reviews.
func hasPurchased(deps *Deps, userID, productID string) bool {
	for _, order := range deps.Orders.OrdersFor(userID) {
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

func handleAddReview(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product id, rating, title and comment are required"})
			return
		}

		if _, found := deps.Catalog.Product(req.ProductID); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		user := c.MustGet("user").(models.User)
		review, err := deps.Reviews.AddReview(models.Review{
			ProductID:          req.ProductID,
			UserID:             user.ID,
			UserName:           user.Username,
			Rating:             req.Rating,
			Title:              req.Title,
			Comment:            req.Comment,
			IsVerifiedPurchase: hasPurchased(deps, user.ID, req.ProductID),
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrInvalidRating):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			case errors.Is(err, store.ErrAlreadyReviewed):
				c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
			default:
				logger.Error("Failed to add review", "product_id", req.ProductID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// canModifyReview is the ownership rule: the author or an admin. The store
// applies updates unconditionally, so the check lives here.
func canModifyReview(review models.Review, user models.User) bool {
	return review.UserID == user.ID || user.Role == models.RoleAdmin
}

func handleUpdateReview(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, found := deps.Reviews.Review(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		user := c.MustGet("user").(models.User)
		if !canModifyReview(review, user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own reviews"})
			return
		}

		var req updateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review payload"})
			return
		}

		err := deps.Reviews.UpdateReview(review.ID, store.ReviewUpdate{
			Rating:  req.Rating,
			Title:   req.Title,
			Comment: req.Comment,
		})
		if err != nil {
			if errors.Is(err, store.ErrInvalidRating) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
				return
			}
			logger.Error("Failed to update review", "review_id", review.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		updated, _ := deps.Reviews.Review(review.ID)
		c.JSON(http.StatusOK, gin.H{"review": updated})
	}
}

func handleDeleteReview(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, found := deps.Reviews.Review(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		user := c.MustGet("user").(models.User)
		if !canModifyReview(review, user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews"})
			return
		}

		if err := deps.Reviews.DeleteReview(review.ID); err != nil {
			logger.Error("Failed to delete review", "review_id", review.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}

func handleMarkHelpful(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, found := deps.Reviews.Review(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		if err := deps.Reviews.MarkHelpful(review.ID); err != nil {
			logger.Error("Failed to mark review helpful", "review_id", review.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		updated, _ := deps.Reviews.Review(review.ID)
		c.JSON(http.StatusOK, gin.H{"review": updated})
	}
}

func handleMyReviews(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"reviews": deps.Reviews.UserReviews(user.ID)})
	}
}
