package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/config"
	"github.com/touchline/touchline-data/internal/ratings"
)

// newRatingsRouter builds a router over the ratings endpoints only. The
// loader has no sources, so the first lookup installs the built-in fallback
// dataset — enough to exercise the handlers without a database.
func newRatingsRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := ratings.NewStore()
	loader := ratings.NewLoader(store, nil, logger)
	resolver := ratings.NewResolver(store, loader, nil, logger)

	h := New(nil, resolver, cache.New(true), &config.Config{LiveDataEnabled: false})

	r := chi.NewRouter()
	r.Get("/ratings/players", h.ListPlayerNames)
	r.Get("/ratings/player/{name}", h.GetPlayerRating)
	r.Post("/ratings/reload", h.ReloadRatings)
	return r
}

func TestGetPlayerRatingExact(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ratings/player/Erling%20Haaland", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["found"])
	assert.Equal(t, "json_database", body["source"])
	assert.Equal(t, "Erling Haaland", body["name"])
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestGetPlayerRatingFuzzy(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ratings/player/kylian%20mbape", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "json_database_fuzzy", body["source"])
	assert.Equal(t, "Kylian Mbappé", body["suggestedName"])
}

func TestGetPlayerRatingNotFound(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ratings/player/Nobody%20Atall", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPlayerRatingETagRevalidation(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ratings/player/Jude%20Bellingham", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	again := httptest.NewRequest(http.MethodGet, "/ratings/player/Jude%20Bellingham", nil)
	again.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, again)

	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestListPlayerNames(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ratings/players", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Names []string `json:"names"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(body.Names), body.Count)
	assert.Contains(t, body.Names, "Erling Haaland")
}

func TestReloadRatings(t *testing.T) {
	router := newRatingsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ratings/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// No sources configured, so the reload reports the fallback path.
	assert.Equal(t, false, body["reloaded"])
	assert.Greater(t, body["players"], float64(0))
}