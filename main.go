package main

import (
	"log"

	"otakumart/internal/config"
	"otakumart/internal/email"
	"otakumart/internal/handlers"
	"otakumart/internal/kvstore"
	"otakumart/internal/logger"
	"otakumart/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	kv, err := kvstore.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}
	defer kv.Close()

	sessions, err := store.NewSessionStore(kv, cfg.SessionDuration)
	if err != nil {
		log.Fatal("Failed to load session store:", err)
	}
	if err := sessions.SeedAdmin(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	notifier := store.LogNotifier{}

	catalog, err := store.NewCatalogStore(kv)
	if err != nil {
		log.Fatal("Failed to load catalog store:", err)
	}
	carts := store.NewCartStores(kv, notifier)
	wishlists := store.NewWishlistStores(kv, notifier)
	orders, err := store.NewOrderStore(kv, notifier)
	if err != nil {
		log.Fatal("Failed to load order store:", err)
	}
	reviews, err := store.NewReviewStore(kv, notifier)
	if err != nil {
		log.Fatal("Failed to load review store:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		logger.Info("Email service enabled with Mailgun")
	} else {
		logger.Info("Email service disabled - Mailgun not configured")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.SetupRoutes(r, &handlers.Deps{
		Config:    cfg,
		Sessions:  sessions,
		Catalog:   catalog,
		Carts:     carts,
		Wishlists: wishlists,
		Orders:    orders,
		Reviews:   reviews,
		Analytics: store.NewAggregator(reviews, catalog),
		Email:     emailService,
	})

	logger.Info("Server starting", "port", cfg.Port, "storage", cfg.Storage)
	log.Fatal(r.Run(":" + cfg.Port))
}
