package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/touchline/touchline-data/internal/api/respond"
	"github.com/touchline/touchline-data/internal/roster"
)

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// writeStoreError maps store errors to HTTP responses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, roster.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Record not found")
		return
	}
	respond.WriteErrorDetail(w, http.StatusInternalServerError, "DB_ERROR", "Database operation failed", err.Error())
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

// ListPlayers returns the squad.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.ListPlayers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"players": players})
}

// GetPlayer returns one squad member.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	player, err := h.roster.GetPlayer(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, player)
}

// CreatePlayer adds a squad member.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var p roster.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body")
		return
	}
	if err := p.Validate(); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
		return
	}
	if err := h.roster.CreatePlayer(r.Context(), &p); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, p)
}

// UpdatePlayer rewrites a squad member's editable fields.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	var p roster.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body")
		return
	}
	p.ID = id
	if err := p.Validate(); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
		return
	}
	if err := h.roster.UpdatePlayer(r.Context(), &p); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}

// DeletePlayer removes a squad member.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	if err := h.roster.DeletePlayer(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// --------------------------------------------------------------------------
// Matches
// --------------------------------------------------------------------------

// ListMatches returns recorded matches, most recent first.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.roster.ListMatches(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"matches": matches})
}

// CreateMatch records a match result. Active bans tick down by one.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var m roster.MatchRecord
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body")
		return
	}
	if err := m.Validate(); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
		return
	}
	if err := h.roster.CreateMatch(r.Context(), &m); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, m)
}

// DeleteMatch removes a match record.
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	if err := h.roster.DeleteMatch(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// --------------------------------------------------------------------------
// Finances
// --------------------------------------------------------------------------

// ListFinances returns the ledger along with the running balance.
func (h *Handler) ListFinances(w http.ResponseWriter, r *http.Request) {
	entries, err := h.roster.ListFinances(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	balance, err := h.roster.Balance(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"entries": entries,
		"balance": balance,
	})
}

// CreateFinanceEntry appends a ledger line.
func (h *Handler) CreateFinanceEntry(w http.ResponseWriter, r *http.Request) {
	var f roster.FinanceEntry
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body")
		return
	}
	if err := f.Validate(); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
		return
	}
	if err := h.roster.CreateFinanceEntry(r.Context(), &f); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, f)
}

// DeleteFinanceEntry removes a ledger line.
func (h *Handler) DeleteFinanceEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	if err := h.roster.DeleteFinanceEntry(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

// --------------------------------------------------------------------------
// Bans
// --------------------------------------------------------------------------

// ListBans returns all bans, active first.
func (h *Handler) ListBans(w http.ResponseWriter, r *http.Request) {
	bans, err := h.roster.ListBans(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"bans": bans})
}

// CreateBan records a suspension.
func (h *Handler) CreateBan(w http.ResponseWriter, r *http.Request) {
	var b roster.Ban
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body")
		return
	}
	if err := b.Validate(); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
		return
	}
	if err := h.roster.CreateBan(r.Context(), &b); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, b)
}

// DeleteBan lifts a ban.
func (h *Handler) DeleteBan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be an integer")
		return
	}
	if err := h.roster.DeleteBan(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}
