// Command api is the Touchline Data API server.
//
// Usage:
//
//	touchline-api
//	API_PORT=8080 touchline-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/touchline/touchline-data/internal/api"
	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/config"
	"github.com/touchline/touchline-data/internal/db"
	"github.com/touchline/touchline-data/internal/maintenance"
	"github.com/touchline/touchline-data/internal/ratings"
	"github.com/touchline/touchline-data/internal/sofifa"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Ratings pipeline: store, dataset sources, optional live enrichment
	store := ratings.NewStore()
	sources := make([]ratings.Source, 0, len(cfg.RatingsDatasetPaths)+1)
	for _, p := range cfg.RatingsDatasetPaths {
		sources = append(sources, &ratings.FileSource{Path: p})
	}
	if cfg.RatingsDatasetURL != "" {
		sources = append(sources, &ratings.HTTPSource{URL: cfg.RatingsDatasetURL})
	}
	loader := ratings.NewLoader(store, sources, logger)

	var live ratings.LiveClient
	if cfg.LiveDataEnabled {
		live = sofifa.NewClient(cfg.SofifaRequestsMin, cfg.SofifaCacheTTL, logger)
		logger.Info("Live enrichment enabled",
			"requests_per_minute", cfg.SofifaRequestsMin,
			"cache_ttl", cfg.SofifaCacheTTL)
	}
	resolver := ratings.NewResolver(store, loader, live, logger)

	// Warm the dataset before serving; a failed load falls back to the
	// built-in dataset and the server still starts.
	if ok := resolver.LoadDataset(ctx); ok {
		logger.Info("Ratings dataset loaded", "players", store.Len())
	} else {
		logger.Warn("Ratings dataset load failed, using fallback", "players", store.Len())
	}

	// Start maintenance tickers (ratings reload, cache stats, ban purge)
	maintCfg := maintenance.DefaultConfig()
	maintCfg.RatingsReloadInterval = cfg.RatingsReloadEvery
	go maintenance.Start(ctx, pool.Pool, resolver, appCache, maintCfg, logger)

	// Create router
	router := api.NewRouter(pool.Pool, resolver, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Touchline Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
