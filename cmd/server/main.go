package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/denizgunduz/pazar/internal"
	"github.com/denizgunduz/pazar/internal/bootstrap"
	"github.com/denizgunduz/pazar/internal/events"
	adminhandler "github.com/denizgunduz/pazar/internal/handler/admin"
	"github.com/denizgunduz/pazar/internal/handler/storefront"
	"github.com/denizgunduz/pazar/internal/middleware"
	"github.com/denizgunduz/pazar/internal/repository"
	"github.com/denizgunduz/pazar/internal/router"
	"github.com/denizgunduz/pazar/internal/routes"
	"github.com/denizgunduz/pazar/internal/service"
	"github.com/denizgunduz/pazar/internal/storage"
	"github.com/denizgunduz/pazar/internal/telemetry"
	"github.com/denizgunduz/pazar/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Order events are best effort: without a broker the noop publisher
	// keeps checkout working.
	publisher := events.NewNoopPublisher()
	if cfg.NatsUrl != "" {
		publisher, err = events.NewNATSPublisher(cfg.NatsUrl, logger)
		if err != nil {
			logger.Warn("NATS unavailable, order events disabled", "error", err)
			publisher = events.NewNoopPublisher()
		}
	}
	defer publisher.Close()

	// Initialize services
	userService := service.NewUserService(store, logger)
	productService := service.NewProductService(store)
	categoryService := service.NewCategoryService(store)
	cartService := service.NewCartService(store)
	couponService := service.NewCouponService(store)
	settingsService := service.NewSettingsService(store)
	reviewService := service.NewReviewService(store)
	favoriteService := service.NewFavoriteService(store)
	addressService := service.NewAddressService(store)
	checkoutService := service.NewCheckoutService(store, settingsService, couponService, publisher, logger)
	orderService := service.NewOrderService(store, publisher, logger)

	if err := bootstrap.EnsureAdmin(ctx, store, bootstrap.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	uploads, err := storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalURL)
	if err != nil {
		return fmt.Errorf("upload storage initialization failed: %w", err)
	}

	// Build route dependencies
	storefrontDeps := routes.StorefrontDeps{
		Catalog:   storefront.NewCatalogHandler(productService, categoryService, reviewService),
		Cart:      storefront.NewCartHandler(cartService),
		Checkout:  storefront.NewCheckoutHandler(checkoutService, addressService),
		Auth:      storefront.NewAuthHandler(userService),
		Profile:   storefront.NewProfileHandler(userService),
		Orders:    storefront.NewOrderHandler(orderService),
		Favorites: storefront.NewFavoriteHandler(favoriteService),
		Reviews:   storefront.NewReviewHandler(reviewService),
		Coupons:   storefront.NewCouponHandler(couponService, checkoutService),
		Addresses: storefront.NewAddressHandler(addressService),
		Config:    storefront.NewConfigHandler(settingsService),
	}

	adminDeps := routes.AdminDeps{
		Products:   adminhandler.NewProductHandler(productService),
		Categories: adminhandler.NewCategoryHandler(categoryService),
		Orders:     adminhandler.NewOrderHandler(orderService),
		Coupons:    adminhandler.NewCouponHandler(couponService),
		Settings:   adminhandler.NewSettingsHandler(settingsService),
		Reviews:    adminhandler.NewReviewHandler(reviewService),
		Users:      adminhandler.NewUserHandler(userService),
		Uploads:    adminhandler.NewUploadHandler(uploads),
	}

	// Initialize middleware
	metrics := middleware.NewMetrics("pazar")
	telemetry.Init("pazar")
	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	authRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	defer authRateLimiter.Stop()

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		metrics.Middleware,
		middleware.MaxBodySize(),
		middleware.Timeout(),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
		router.CORS(cfg.CORSOrigins),
		middleware.WithUser(userService),
		middleware.WithRequestLogger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps, authRateLimiter.Middleware)
	routes.RegisterAdminRoutes(r, adminDeps)

	// Uploaded images are served straight from disk.
	r.Static(cfg.Storage.LocalURL+"/", cfg.Storage.LocalPath)

	// Background sweeps: stale transfer order cancellation, session pruning
	sweeper := worker.NewWorker(store, publisher, worker.Config{
		SweepInterval:      cfg.Worker.SweepInterval,
		TransferPaymentTTL: cfg.Worker.TransferPaymentTTL,
	}, logger)
	go func() {
		if err := sweeper.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("worker stopped", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
