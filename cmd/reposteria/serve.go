// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"reposteria/internal/cache"
	"reposteria/internal/database"
	"reposteria/internal/handlers"
	"reposteria/internal/imaging"
	"reposteria/internal/middleware"
	"reposteria/internal/render"
	"reposteria/internal/router"
	"reposteria/internal/storage"
	"reposteria/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Long: `Connects to PostgreSQL and Valkey, applies pending migrations, seeds an
empty catalog in development, and serves the storefront until SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		return err
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			return err
		}
	}

	// Connect to Valkey. Without a host the storefront runs uncached.
	var valkeyClient *redis.Client
	if cfg.ValkeyHost != "" {
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			return err
		}
		defer valkeyClient.Close()
	} else {
		slog.Warn("valkey not configured, page and category caching disabled")
	}

	site := render.Site{Name: cfg.StoreName, WhatsAppNumber: cfg.WhatsAppNumber}
	renderer, err := render.New(cfg.IsDev(), site)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		return err
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	recipeStore := store.NewRecipeStore(db)
	bannerStore := store.NewBannerStore(db)
	brandStore := store.NewBrandStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	// Connect to S3-compatible object storage (optional, uploads are
	// disabled without it).
	var images handlers.ImageStore
	if cfg.S3Enabled() {
		storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			return err
		}
		images = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	var pageCache *cache.PageCache
	if valkeyClient != nil {
		pageCache = cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	}
	categoryCache := cache.NewCategoryCache(valkeyClient, cache.DefaultCategoryTTL, categoryStore.ListWithCounts)

	publicHandlers := handlers.NewPublic(renderer, categoryCache, productStore, recipeStore, bannerStore, brandStore, pageCache, cfg.WhatsAppNumber, cfg.SearchDebounce)
	apiHandlers := handlers.NewAPI(categoryCache, productStore)
	adminHandlers := handlers.NewAdmin(categoryStore, productStore, recipeStore, bannerStore, brandStore, images, pageCache, categoryCache, cacheLogStore)
	if images != nil && cfg.ResizeImages {
		imaging.Startup(0)
		defer imaging.Shutdown()
		adminHandlers.WithResizer(imaging.NewResizer())
	}

	var searchLimiter *middleware.RateLimiter
	if cfg.SearchRateLimit > 0 {
		searchLimiter = middleware.NewRateLimiter(cfg.SearchRateLimit, time.Minute)
		defer searchLimiter.Stop()
	}
	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, admin API disabled")
	}

	r := router.New(publicHandlers, apiHandlers, adminHandlers, searchLimiter, cfg.AdminToken)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		slog.Error("server failed to start", "error", err)
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
