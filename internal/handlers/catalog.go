package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func handleListProducts(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": deps.Catalog.Products()})
	}
}

func handleGetProduct(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, found := deps.Catalog.Product(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func handleGetProductBySlug(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, found := deps.Catalog.ProductBySlug(c.Param("slug"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func handleProductReviews(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reviews": deps.Reviews.ProductReviews(c.Param("id"))})
	}
}

func handleProductRating(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		c.JSON(http.StatusOK, gin.H{
			"averageRating":      deps.Reviews.AverageRating(id),
			"ratingDistribution": deps.Reviews.RatingDistribution(id),
		})
	}
}
