// Package handler provides HTTP handlers for all API endpoints. Roster
// handlers go straight to Postgres through the roster store — no service
// layer. Rating handlers resolve through the in-memory ratings pipeline.
package handler

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/touchline/touchline-data/internal/api/respond"
	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/config"
	"github.com/touchline/touchline-data/internal/ratings"
	"github.com/touchline/touchline-data/internal/roster"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	roster   *roster.Store
	resolver *ratings.Resolver
	cache    *cache.Cache
	cfg      *config.Config
	db       *pgxpool.Pool
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, resolver *ratings.Resolver, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		roster:   roster.NewStore(pool),
		resolver: resolver,
		cache:    c,
		cfg:      cfg,
		db:       pool,
	}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Touchline Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}
