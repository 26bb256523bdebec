package handlers

import (
	"otakumart/internal/config"
	"otakumart/internal/email"
	"otakumart/internal/middleware"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps bundles the services the handlers close over. Everything is
// constructed once in main and injected here.
type Deps struct {
	Config    *config.Config
	Sessions  *store.SessionStore
	Catalog   *store.CatalogStore
	Carts     *store.CartStores
	Wishlists *store.WishlistStores
	Orders    *store.OrderStore
	Reviews   *store.ReviewStore
	Analytics *store.Aggregator
	Email     *email.Service
}

func SetupRoutes(r *gin.Engine, deps *Deps) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(deps.Config))
	r.Use(middleware.CORS(deps.Config.AllowedOrigins))
	r.Use(middleware.RateLimit(deps.Config))

	r.POST("/api/register", middleware.AuthRateLimit(deps.Config), handleRegister(deps))
	r.POST("/api/login", middleware.AuthRateLimit(deps.Config), handleLogin(deps))

	public := r.Group("/api")
	public.Use(middleware.AuthOptional(deps.Sessions))
	{
		public.GET("/products", handleListProducts(deps))
		public.GET("/products/:id", handleGetProduct(deps))
		public.GET("/products/slug/:slug", handleGetProductBySlug(deps))
		public.GET("/products/:id/reviews", handleProductReviews(deps))
		public.GET("/products/:id/rating", handleProductRating(deps))
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthRequired(deps.Sessions))
	{
		protected.POST("/logout", handleLogout(deps))
		protected.GET("/me", handleMe())
		protected.PUT("/profile", handleUpdateProfile(deps))
		protected.PUT("/password", handleUpdatePassword(deps))

		protected.GET("/cart", handleGetCart(deps))
		protected.POST("/cart", handleAddToCart(deps))
		protected.PUT("/cart/:id", handleUpdateCartQuantity(deps))
		protected.DELETE("/cart/:id", handleRemoveFromCart(deps))
		protected.DELETE("/cart", handleClearCart(deps))

		protected.GET("/wishlist", handleGetWishlist(deps))
		protected.POST("/wishlist", handleAddToWishlist(deps))
		protected.DELETE("/wishlist/:id", handleRemoveFromWishlist(deps))
		protected.DELETE("/wishlist", handleClearWishlist(deps))

		protected.POST("/checkout", handleCheckout(deps))
		protected.POST("/buy-now", handleBuyNow(deps))
		protected.GET("/orders", handleListOrders(deps))
		protected.GET("/orders/:id", handleGetOrder(deps))

		protected.POST("/reviews", handleAddReview(deps))
		protected.PUT("/reviews/:id", handleUpdateReview(deps))
		protected.DELETE("/reviews/:id", handleDeleteReview(deps))
		protected.POST("/reviews/:id/helpful", handleMarkHelpful(deps))
		protected.GET("/my-reviews", handleMyReviews(deps))
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired(deps.Sessions))
	{
		admin.GET("/users", handleListUsers(deps))
		admin.POST("/products", handleCreateProduct(deps))
		admin.PUT("/products/:id", handleAdminUpdateProduct(deps))
		admin.DELETE("/products/:id", handleAdminDeleteProduct(deps))
		admin.DELETE("/reviews/:id", handleAdminDeleteReview(deps))
		admin.PUT("/orders/:id/status", handleUpdateOrderStatus(deps))
		admin.GET("/analytics", handleAnalytics(deps))
	}
}
