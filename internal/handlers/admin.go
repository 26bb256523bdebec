package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"otakumart/internal/logger"
	"otakumart/internal/models"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

func handleListUsers(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": deps.Sessions.Users()})
	}
}

type createProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Price            float64  `json:"price" binding:"required"`
	Image            string   `json:"image"`
	Category         string   `json:"category"`
	Series           string   `json:"series"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	ModelPath        string   `json:"modelPath"`
	AdditionalImages []string `json:"additionalImages"`
}

func handleCreateProduct(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and price are required"})
			return
		}

		product, err := deps.Catalog.AddProduct(models.Product{
			Name:             req.Name,
			Price:            req.Price,
			Image:            req.Image,
			Category:         req.Category,
			Series:           req.Series,
			Description:      req.Description,
			Features:         req.Features,
			ModelPath:        req.ModelPath,
			AdditionalImages: req.AdditionalImages,
		})
		if err != nil {
			if errors.Is(err, store.ErrInvalidPrice) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
				return
			}
			logger.Error("Failed to create product", "name", req.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

type updateProductRequest struct {
	Name             *string   `json:"name"`
	Price            *float64  `json:"price"`
	Image            *string   `json:"image"`
	Category         *string   `json:"category"`
	Series           *string   `json:"series"`
	Description      *string   `json:"description"`
	Features         *[]string `json:"features"`
	ModelPath        *string   `json:"modelPath"`
	AdditionalImages *[]string `json:"additionalImages"`
}

func handleAdminUpdateProduct(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, found := deps.Catalog.Product(id); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
			return
		}

		if req.Price != nil && *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}

		err := deps.Catalog.UpdateProduct(id, store.ProductUpdate{
			Name:             req.Name,
			Price:            req.Price,
			Image:            req.Image,
			Category:         req.Category,
			Series:           req.Series,
			Description:      req.Description,
			Features:         req.Features,
			ModelPath:        req.ModelPath,
			AdditionalImages: req.AdditionalImages,
		})
		if err != nil {
			logger.Error("Failed to update product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		product, _ := deps.Catalog.Product(id)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func handleAdminDeleteProduct(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, found := deps.Catalog.Product(id); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := deps.Catalog.DeleteProduct(id); err != nil {
			logger.Error("Failed to delete product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// handleAdminDeleteReview is moderation: no ownership check.
func handleAdminDeleteReview(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, found := deps.Reviews.Review(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
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

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func handleUpdateOrderStatus(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, found := deps.Orders.OrderByID(id); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		if err := deps.Orders.UpdateStatus(id, models.OrderStatus(req.Status)); err != nil {
			if errors.Is(err, store.ErrInvalidStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be processing, shipped or delivered"})
				return
			}
			logger.Error("Failed to update order status", "order_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		order, _ := deps.Orders.OrderByID(id)
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// handleAnalytics serves the review dashboard: headline stats for the
// requested window plus the top-rated product table.
func handleAnalytics(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		window := store.Window(c.DefaultQuery("window", string(store.Window30Days)))

		limit := 5
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a non-negative integer"})
				return
			}
			limit = parsed
		}

		c.JSON(http.StatusOK, gin.H{
			"summary":        deps.Analytics.Summarize(window),
			"productRatings": deps.Analytics.ProductRatings(window, limit),
		})
	}
}
