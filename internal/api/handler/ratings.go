package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/touchline/touchline-data/internal/api/respond"
	"github.com/touchline/touchline-data/internal/cache"
	"github.com/touchline/touchline-data/internal/ratings"
)

// GetPlayerRating resolves one player card. The name is taken from the URL
// path; ?live=false skips enrichment. Only live-free lookups are cached —
// enriched cards carry a retrieval timestamp and must stay fresh.
func (h *Handler) GetPlayerRating(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_NAME", "Malformed player name")
		return
	}

	useLive := h.cfg.LiveDataEnabled
	if v := r.URL.Query().Get("live"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			useLive = useLive && parsed
		}
	}

	cacheKey := "rating:" + name
	if !useLive {
		if data, etag, ok := h.cache.Get(cacheKey); ok {
			if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
				respond.WriteNotModified(w, etag)
				return
			}
			respond.WriteJSON(w, data, etag, cache.TTLRatings, true)
			return
		}
	}

	result := h.resolver.Lookup(r.Context(), name, ratings.Options{UseLiveData: useLive})
	if result == nil {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND",
			fmt.Sprintf("No rating found for %q", name))
		return
	}

	if !useLive {
		data, err := json.Marshal(result)
		if err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode rating")
			return
		}
		etag := h.cache.Set(cacheKey, data, cache.TTLRatings)
		respond.WriteJSON(w, data, etag, cache.TTLRatings, false)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, result)
}

// ListPlayerNames returns every player name the ratings dataset knows.
func (h *Handler) ListPlayerNames(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "rating:names"
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLRatingList, true)
		return
	}

	names := h.resolver.Names(r.Context())
	data, err := json.Marshal(map[string]any{"names": names, "count": len(names)})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode names")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLRatingList)
	respond.WriteJSON(w, data, etag, cache.TTLRatingList, false)
}

// ReloadRatings forces a dataset reload and invalidates the names cache.
func (h *Handler) ReloadRatings(w http.ResponseWriter, r *http.Request) {
	ok := h.resolver.LoadDataset(r.Context())
	h.cache.Expire("rating:names")
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"reloaded": ok,
		"players":  len(h.resolver.Names(r.Context())),
	})
}
