package main

import (
	"context"
	"log"
	"time"

	"pharmacart/internal/core/auth"
	"pharmacart/internal/core/cache"
	"pharmacart/internal/core/config"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/core/server"
	addressadapters "pharmacart/internal/features/addresses/adapters"
	addresshandler "pharmacart/internal/features/addresses/handler"
	addressservice "pharmacart/internal/features/addresses/service"
	cartadapters "pharmacart/internal/features/cart/adapters"
	carthandler "pharmacart/internal/features/cart/handler"
	cartservice "pharmacart/internal/features/cart/service"
	catalogadapters "pharmacart/internal/features/catalog/adapters"
	cataloghandler "pharmacart/internal/features/catalog/handler"
	catalogservice "pharmacart/internal/features/catalog/service"
	checkoutadapters "pharmacart/internal/features/checkout/adapters"
	checkouthandler "pharmacart/internal/features/checkout/handler"
	checkoutservice "pharmacart/internal/features/checkout/service"
	couponadapters "pharmacart/internal/features/coupons/adapters"
	couponhandler "pharmacart/internal/features/coupons/handler"
	couponservice "pharmacart/internal/features/coupons/service"
	prescriptionadapters "pharmacart/internal/features/prescriptions/adapters"
	settingsadapters "pharmacart/internal/features/settings/adapters"
	settingsservice "pharmacart/internal/features/settings/service"

	"go.uber.org/zap"
)

// @title Pharmacart API
// @version 1.0
// @description Cart, coupon and checkout operations for the online pharmacy backend.
// @contact.name API Support
// @contact.email support@pharmacart.app
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	store, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to connect to the local store", zap.Error(err))
	}
	defer store.Close()

	tokens := auth.NewTokenStore(store, cfg.Pharmacy.Token)
	tokenSource := func() string { return tokens.Token(context.Background()) }

	readTimeout := time.Duration(cfg.Pharmacy.ReadTimeoutSeconds) * time.Second
	writeTimeout := time.Duration(cfg.Pharmacy.WriteTimeoutSeconds) * time.Second

	// Cart: durable store backed, hydrated from the previous run.
	cart := cartservice.NewCartStore(cartadapters.NewRedisCartRepository(store))
	if err := cart.Hydrate(context.Background()); err != nil {
		l.Warn("Failed to hydrate cart from the local store", zap.Error(err))
	}

	// Settings cache feeding the price breakdown.
	settings := settingsservice.NewSettingsService(
		settingsadapters.NewAPIAdapter(cfg.Pharmacy.URL, readTimeout, tokenSource))

	// Coupons: revalidated in the background on every cart mutation.
	coupons := couponservice.NewCouponResolver(
		couponadapters.NewAPIAdapter(cfg.Pharmacy.URL, readTimeout, tokenSource), cart)
	cart.Subscribe(func() {
		go coupons.Revalidate(context.Background())
	})

	addresses := addressservice.NewAddressService(
		addressadapters.NewAPIAdapter(cfg.Pharmacy.URL, readTimeout, tokenSource),
		cfg.Checkout.AddressRetryAttempts,
		time.Duration(cfg.Checkout.AddressRetryBackoffSeconds)*time.Second,
	)

	catalog := catalogservice.NewCatalogService(
		catalogadapters.NewAPIAdapter(cfg.Pharmacy.URL, readTimeout, tokenSource))

	checkout := checkoutservice.NewCheckoutService(
		checkoutadapters.NewAPIAdapter(cfg.Pharmacy.URL, writeTimeout, tokenSource),
		prescriptionadapters.NewAPIAdapter(cfg.Pharmacy.URL, writeTimeout, tokenSource),
		prescriptionadapters.NewRedisPendingRepository(store),
		cart, settings, coupons,
	)

	cartHdl := carthandler.NewCartHandler(cart, settings, coupons)
	couponHdl := couponhandler.NewCouponHandler(coupons)
	addressHdl := addresshandler.NewAddressHandler(addresses)
	catalogHdl := cataloghandler.NewCatalogHandler(catalog)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkout)

	srv := server.New(cfg)

	srv.App.Get("/cart", cartHdl.GetCart)
	srv.App.Post("/cart/items", cartHdl.AddItems)
	srv.App.Patch("/cart/items/:productId", cartHdl.UpdateQuantity)
	srv.App.Delete("/cart/items/:productId", cartHdl.RemoveItem)

	srv.App.Get("/coupons", couponHdl.List)
	srv.App.Get("/cart/coupon", couponHdl.State)
	srv.App.Post("/cart/coupon", couponHdl.Apply)
	srv.App.Delete("/cart/coupon", couponHdl.Remove)

	srv.App.Get("/addresses", addressHdl.List)
	srv.App.Post("/addresses", addressHdl.Create)
	srv.App.Put("/addresses/:id", addressHdl.Update)
	srv.App.Delete("/addresses/:id", addressHdl.Delete)
	srv.App.Post("/addresses/serviceability", addressHdl.CheckServiceability)

	srv.App.Get("/products/:id", catalogHdl.GetProduct)

	srv.App.Post("/checkout", checkoutHdl.Begin)
	srv.App.Get("/checkout/:id", checkoutHdl.Get)
	srv.App.Post("/checkout/:id/address", checkoutHdl.SelectAddress)
	srv.App.Post("/checkout/:id/patient", checkoutHdl.SubmitPatientInfo)
	srv.App.Post("/checkout/:id/prescriptions", checkoutHdl.AttachPrescription)
	srv.App.Post("/checkout/:id/confirm", checkoutHdl.Confirm)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
