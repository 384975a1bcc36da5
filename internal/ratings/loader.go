package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Source is one candidate location for the bulk ratings dataset.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

// HTTPSource fetches the dataset over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Loader fills a Store from the first responding dataset source.
type Loader struct {
	store   *Store
	sources []Source
	logger  *slog.Logger
}

// NewLoader creates a loader over an ordered list of candidate sources.
func NewLoader(store *Store, sources []Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, sources: sources, logger: logger}
}

// Load probes candidate sources in order and populates the store from the
// first one that responds. Records that fail to transform are logged and
// skipped without aborting the load. Load never fails hard: when no source
// responds or the payload is not an array of records, it installs the
// built-in fallback dataset and reports false.
func (l *Loader) Load(ctx context.Context) bool {
	var data []byte
	var from string
	for _, src := range l.sources {
		b, err := src.Fetch(ctx)
		if err != nil {
			l.logger.Warn("Ratings source unavailable", "source", src.Name(), "error", err)
			continue
		}
		data, from = b, src.Name()
		break
	}
	if data == nil {
		l.logger.Error("No ratings source responded, installing fallback dataset")
		l.installFallback()
		return false
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		l.logger.Error("Ratings dataset is not an array, installing fallback dataset",
			"source", from, "error", err)
		l.installFallback()
		return false
	}

	now := time.Now()
	stored := 0
	for i, rawJSON := range rawRecords {
		var raw RawRating
		if err := json.Unmarshal(rawJSON, &raw); err != nil {
			l.logger.Warn("Skipping unparseable ratings record", "index", i, "error", err)
			continue
		}
		name, rating, err := transformRating(raw, now)
		if err != nil {
			l.logger.Warn("Skipping ratings record", "index", i, "error", err)
			continue
		}
		l.store.Put(name, rating)
		stored++
	}

	l.logger.Info("Ratings dataset loaded",
		"source", from, "stored", stored, "total", len(rawRecords))
	return true
}
