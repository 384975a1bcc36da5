package ratings

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source tags stamped on every match result. The values are part of the
// contract with the web client and must not change.
const (
	SourceDatabase      = "json_database"
	SourceDatabaseFuzzy = "json_database_fuzzy"
	SourceLiveEnhanced  = "sofifa_enhanced"
	SourceMockFallback  = "mock_fallback"
	SourceMockError     = "mock_error_fallback"
)

// LiveRating is a freshly scraped set of rating fields. Nil pointers mean
// the field was absent from the page; the merge skips them.
type LiveRating struct {
	Overall    *int
	Potential  *int
	Positions  []string
	Age        *int
	Height     *int
	Weight     *int
	Foot       *string
	Pace       *int
	Shooting   *int
	Passing    *int
	Dribbling  *int
	Defending  *int
	Physical   *int
	Skills     map[string]int
	Club       *string
	Value      *string
	Wage       *string
	Contract   *string
	WorkRates  *string
	WeakFoot   *int
	SkillMoves *int
}

// LiveClient fetches freshly scraped rating data for one player. A nil
// result with a nil error means the client had nothing for this player.
type LiveClient interface {
	FetchPlayer(ctx context.Context, profileURL string, sofifaID int, displayName string) (*LiveRating, error)
}

// MatchResult is the outcome of one lookup: a copy of the matched canonical
// rating plus provenance. Constructed fresh per lookup, never stored.
type MatchResult struct {
	PlayerRating
	SearchName        string     `json:"searchName"`
	Found             bool       `json:"found"`
	Source            string     `json:"source"`
	SuggestedName     string     `json:"suggestedName,omitempty"`
	MockDataAvailable bool       `json:"mockDataAvailable,omitempty"`
	RetrievedAt       *time.Time `json:"retrievedAt,omitempty"`
	LiveAttemptedAt   *time.Time `json:"liveAttemptedAt,omitempty"`
	LiveError         string     `json:"liveError,omitempty"`
}

// Options controls a single lookup.
type Options struct {
	UseLiveData bool
}

// DefaultOptions enables live enrichment.
func DefaultOptions() Options {
	return Options{UseLiveData: true}
}

// Resolver is the public entry point of the pipeline: it lazily loads the
// dataset, runs exact-then-fuzzy matching, and merges optional live data
// over the local record with a defined precedence.
type Resolver struct {
	store  *Store
	loader *Loader
	live   LiveClient // nil disables enrichment
	logger *slog.Logger

	loadGroup singleflight.Group
}

// NewResolver wires a resolver. live may be nil to disable enrichment.
func NewResolver(store *Store, loader *Loader, live LiveClient, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, loader: loader, live: live, logger: logger}
}

// ensureLoaded loads the dataset when the store is empty. Concurrent callers
// observing an empty store share a single in-flight load.
func (r *Resolver) ensureLoaded(ctx context.Context) {
	if r.store.Len() > 0 {
		return
	}
	r.loadGroup.Do("load", func() (any, error) {
		if r.store.Len() == 0 {
			r.loader.Load(ctx)
		}
		return nil, nil
	})
}

// LoadDataset forces a dataset load, reporting whether a source was read
// (false means the built-in fallback dataset was installed instead).
func (r *Resolver) LoadDataset(ctx context.Context) bool {
	return r.loader.Load(ctx)
}

// Lookup resolves a display name to an enriched match result.
//
// Returns nil when the name is blank or no local entry qualifies. Live
// enrichment is best-effort: failures degrade the source tag and never
// surface as errors.
func (r *Resolver) Lookup(ctx context.Context, name string, opts Options) *MatchResult {
	r.ensureLoaded(ctx)

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	cand := Match(r.store, trimmed)
	if cand == nil {
		return nil
	}

	result := &MatchResult{
		PlayerRating: cand.Rating.clone(),
		SearchName:   trimmed,
		Found:        true,
		Source:       SourceDatabase,
	}
	if !cand.Exact {
		result.Source = SourceDatabaseFuzzy
		result.SuggestedName = cand.Name
	}

	if !opts.UseLiveData || r.live == nil || result.SofifaURL == "" {
		return result
	}

	now := time.Now()
	live, err := r.live.FetchPlayer(ctx, result.SofifaURL, idOrZero(result.SofifaID), cand.Name)
	switch {
	case err != nil:
		r.logger.Warn("Live enrichment failed, keeping local data",
			"player", cand.Name, "error", err)
		result.Source = SourceMockError
		result.LiveError = err.Error()
		result.LiveAttemptedAt = &now
	case live == nil:
		result.Source = SourceMockFallback
		result.LiveAttemptedAt = &now
	default:
		mergeLive(&result.PlayerRating, live)
		result.Source = SourceLiveEnhanced
		result.MockDataAvailable = true
		result.RetrievedAt = &now
	}
	return result
}

// Names returns all known player display names, loading the dataset first
// if needed.
func (r *Resolver) Names(ctx context.Context) []string {
	r.ensureLoaded(ctx)
	return r.store.Names()
}

// Has reports whether an exact entry exists for the trimmed name, loading
// the dataset first if needed.
func (r *Resolver) Has(ctx context.Context, name string) bool {
	r.ensureLoaded(ctx)
	_, ok := r.store.Get(strings.TrimSpace(name))
	return ok
}

// AddPlayer inserts or overrides a store entry directly. Intended for tests
// and admin seeding.
func (r *Resolver) AddPlayer(name string, rating PlayerRating) {
	r.store.Put(name, rating)
}

// mergeLive overwrites local fields with live values, field by field. Live
// data wins for every field the scrape produced; absent live fields keep
// the local value.
func mergeLive(local *PlayerRating, live *LiveRating) {
	setInt(&local.Overall, live.Overall)
	setInt(&local.Potential, live.Potential)
	if len(live.Positions) > 0 {
		local.Positions = append([]string(nil), live.Positions...)
	}
	setInt(&local.Age, live.Age)
	setInt(&local.Height, live.Height)
	setInt(&local.Weight, live.Weight)
	setString(&local.Foot, live.Foot)
	setInt(&local.Pace, live.Pace)
	setInt(&local.Shooting, live.Shooting)
	setInt(&local.Passing, live.Passing)
	setInt(&local.Dribbling, live.Dribbling)
	setInt(&local.Defending, live.Defending)
	setInt(&local.Physical, live.Physical)
	for k, v := range live.Skills {
		local.Skills[k] = v
	}
	setString(&local.Club, live.Club)
	setString(&local.Value, live.Value)
	setString(&local.Wage, live.Wage)
	setString(&local.Contract, live.Contract)
	setString(&local.WorkRates, live.WorkRates)
	setInt(&local.WeakFoot, live.WeakFoot)
	setInt(&local.SkillMoves, live.SkillMoves)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func idOrZero(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}
