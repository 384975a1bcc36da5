package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/touchline/touchline-data/internal/api/handler"
	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/config"
	"github.com/touchline/touchline-data/internal/ratings"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *pgxpool.Pool, resolver *ratings.Resolver, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, resolver, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI backed by the embedded OpenAPI document.
	r.Get("/docs/doc.json", SwaggerDoc)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Squad
		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.ListPlayers)
			r.Post("/", h.CreatePlayer)
			r.Get("/{id}", h.GetPlayer)
			r.Put("/{id}", h.UpdatePlayer)
			r.Delete("/{id}", h.DeletePlayer)
		})

		// Matches
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.ListMatches)
			r.Post("/", h.CreateMatch)
			r.Delete("/{id}", h.DeleteMatch)
		})

		// Finances
		r.Route("/finances", func(r chi.Router) {
			r.Get("/", h.ListFinances)
			r.Post("/", h.CreateFinanceEntry)
			r.Delete("/{id}", h.DeleteFinanceEntry)
		})

		// Bans
		r.Route("/bans", func(r chi.Router) {
			r.Get("/", h.ListBans)
			r.Post("/", h.CreateBan)
			r.Delete("/{id}", h.DeleteBan)
		})

		// Ratings
		r.Route("/ratings", func(r chi.Router) {
			r.Get("/players", h.ListPlayerNames)
			r.Get("/player/{name}", h.GetPlayerRating)
			r.Post("/reload", h.ReloadRatings)
		})
	})

	return r
}
