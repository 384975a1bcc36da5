// Package sofifa implements the live enrichment client: a rate-limited,
// cache-backed HTTP client that fetches player profile pages and scrapes
// them into ratings.LiveRating values.
//
// Pages change rarely, so responses are cached with a fixed client-side TTL
// regardless of what cache headers the origin sends.
package sofifa

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"

	"github.com/touchline/touchline-data/internal/ratings"
)

const userAgent = "touchline-data/1.0 (+https://github.com/touchline/touchline-data)"

// Client fetches and parses player pages. Implements ratings.LiveClient.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client with an in-memory response cache and a token
// bucket limiter so lookups never hammer the origin.
func NewClient(requestsPerMinute int, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	transport := httpcache.NewMemoryCacheTransport()
	transport.Transport = &ttlTransport{next: http.DefaultTransport, maxAge: cacheTTL}

	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// FetchPlayer retrieves one player page and scrapes its rating fields.
func (c *Client) FetchPlayer(ctx context.Context, profileURL string, sofifaID int, displayName string) (*ratings.LiveRating, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching player page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for player %d", resp.StatusCode, sofifaID)
	}

	live, err := parsePlayerPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page for %q: %w", displayName, err)
	}
	c.logger.Debug("Live rating scraped", "player", displayName, "id", sofifaID)
	return live, nil
}

// ttlTransport rewrites origin cache headers so httpcache stores every
// response for a fixed TTL, overriding any cache-busting the origin sends.
type ttlTransport struct {
	next   http.RoundTripper
	maxAge time.Duration
}

func (t *ttlTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Header.Del("Pragma")
	resp.Header.Del("Expires")
	resp.Header.Del("Cache-Control")
	resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))
	return resp, nil
}
