// Package main is the entry point for the tree catalog API server.
// It loads configuration, loads the built catalog, connects to services,
// sets up routing, and starts the HTTP server with graceful shutdown
// support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greentree/internal/cache"
	"greentree/internal/catalog"
	"greentree/internal/config"
	"greentree/internal/database"
	"greentree/internal/handlers"
	"greentree/internal/router"
	"greentree/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"catalog", cfg.CatalogPath,
	)

	// Load the built catalog. The server cannot answer anything without it.
	catalogStore, err := catalog.NewStore(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("catalog loaded",
		"varieties", catalogStore.Snapshot().Len(),
		"generated_at", catalogStore.Snapshot().GeneratedAt(),
	)

	// Connect to PostgreSQL for client request intake. Optional: the
	// catalog API stays up without it.
	var requestStore *store.RequestStore
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Warn("database unavailable, request intake disabled", "error", err)
	} else {
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		requestStore = store.NewRequestStore(db)
	}

	// Connect to Valkey for the query cache and per-visitor state.
	// Optional as well: queries still work, just uncached and without
	// wishlists.
	var (
		queryCache    *cache.QueryCache
		wishlistStore *store.WishlistStore
		recentStore   *store.RecentStore
	)
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, cache and wishlist disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		queryCache = cache.NewQueryCache(valkeyClient, cache.DefaultQueryTTL)
		wishlistStore = store.NewWishlistStore(valkeyClient)
		recentStore = store.NewRecentStore(valkeyClient)
	}

	// Create handler groups with their dependencies.
	treeHandlers := handlers.NewTrees(catalogStore, queryCache, recentStore)
	wishlistHandlers := handlers.NewWishlist(catalogStore, wishlistStore, recentStore)
	requestHandlers := handlers.NewRequests(requestStore)
	adminHandlers := handlers.NewAdmin(catalogStore, requestStore, queryCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(treeHandlers, wishlistHandlers, requestHandlers, adminHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
