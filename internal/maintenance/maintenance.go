// Package maintenance runs periodic background tasks as Go tickers. The API
// server is already a persistent process, so scheduled work lives here
// instead of an external cron.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/ratings"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RatingsReloadInterval time.Duration // Re-fetch the ratings dataset
	CacheStatsInterval    time.Duration // Log cache hit/miss counters
	BanPurgeInterval      time.Duration // Remove long-spent bans
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RatingsReloadInterval: 24 * time.Hour,
		CacheStatsInterval:    30 * time.Minute,
		BanPurgeInterval:      12 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, resolver *ratings.Resolver, appCache *cache.Cache, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"ratings_reload", cfg.RatingsReloadInterval,
		"cache_stats", cfg.CacheStatsInterval,
		"ban_purge", cfg.BanPurgeInterval)

	tickers := make([]*time.Ticker, 0, 3)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Ratings reload: pick up dataset updates without a restart
	if cfg.RatingsReloadInterval > 0 {
		t := time.NewTicker(cfg.RatingsReloadInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { reloadRatings(ctx, resolver, logger) })
	}

	// Cache stats: periodic visibility into hit rates
	if cfg.CacheStatsInterval > 0 && appCache != nil {
		t := time.NewTicker(cfg.CacheStatsInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { logCacheStats(appCache, logger) })
	}

	// Ban purge: spent bans are kept for history, but not forever
	if cfg.BanPurgeInterval > 0 {
		t := time.NewTicker(cfg.BanPurgeInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { purgeSpentBans(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func reloadRatings(ctx context.Context, resolver *ratings.Resolver, logger *slog.Logger) {
	start := time.Now()
	if ok := resolver.LoadDataset(ctx); !ok {
		logger.Warn("Ratings reload: all sources failed, fallback dataset active")
		return
	}
	logger.Info("Ratings reload: dataset refreshed",
		"players", len(resolver.Names(ctx)),
		"duration", time.Since(start).Round(time.Millisecond))
}

func logCacheStats(appCache *cache.Cache, logger *slog.Logger) {
	stats := appCache.Stats()
	logger.Info("Cache stats",
		"total_keys", stats["total_keys"],
		"active_keys", stats["active_keys"],
		"expired_keys", stats["expired_keys"])
}

// purgeSpentBans removes bans that ran out more than 90 days ago. Recent
// spent bans stay visible for the season review screen.
func purgeSpentBans(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM bans
		WHERE matches_remaining = 0
		  AND created_at < NOW() - INTERVAL '90 days'`)
	if err != nil {
		logger.Warn("Ban purge: failed", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Ban purge: removed spent bans", "count", tag.RowsAffected())
	}
}
