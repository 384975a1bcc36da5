package ratings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ratings.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLoaderLoadsFromFileSource(t *testing.T) {
	path := writeDataset(t, `[
		{"id": 1, "name": "Erling Haaland", "overall": 91, "positions": "ST"},
		{"id": 2, "name": "Kylian Mbappé", "overall": 91, "positions": "ST,LW"}
	]`)
	store := NewStore()
	loader := NewLoader(store, []Source{FileSource{Path: path}}, discardLogger())

	assert.True(t, loader.Load(context.Background()))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"Erling Haaland", "Kylian Mbappé"}, store.Names())

	r, ok := store.Get("Kylian Mbappé")
	require.True(t, ok)
	assert.Equal(t, []string{"ST", "LW"}, r.Positions)
}

func TestLoaderFirstRespondingSourceWins(t *testing.T) {
	good := writeDataset(t, `[{"id": 1, "name": "Only Player"}]`)
	store := NewStore()
	loader := NewLoader(store, []Source{
		FileSource{Path: "/nonexistent/ratings.json"},
		FileSource{Path: good},
		FileSource{Path: "/also/nonexistent.json"},
	}, discardLogger())

	assert.True(t, loader.Load(context.Background()))
	assert.Equal(t, []string{"Only Player"}, store.Names())
}

func TestLoaderSkipsBadRecords(t *testing.T) {
	path := writeDataset(t, `[
		{"id": 1, "name": "Good Player"},
		{"id": 2, "name": "   "},
		"not an object",
		{"id": 3, "name": "Another Good Player"}
	]`)
	store := NewStore()
	loader := NewLoader(store, []Source{FileSource{Path: path}}, discardLogger())

	assert.True(t, loader.Load(context.Background()))
	assert.Equal(t, []string{"Good Player", "Another Good Player"}, store.Names())
}

func TestLoaderLastWriteWinsOnDuplicateNames(t *testing.T) {
	path := writeDataset(t, `[
		{"id": 1, "name": "Dup Player", "overall": 70},
		{"id": 2, "name": "Dup Player", "overall": 85}
	]`)
	store := NewStore()
	loader := NewLoader(store, []Source{FileSource{Path: path}}, discardLogger())

	assert.True(t, loader.Load(context.Background()))
	assert.Equal(t, 1, store.Len())
	r, _ := store.Get("Dup Player")
	assert.Equal(t, 85, r.Overall)
}

func TestLoaderFallbackWhenNoSourceResponds(t *testing.T) {
	store := NewStore()
	loader := NewLoader(store, []Source{FileSource{Path: "/nope.json"}}, discardLogger())

	assert.False(t, loader.Load(context.Background()))
	assert.Greater(t, store.Len(), 0)
	_, ok := store.Get("Erling Haaland")
	assert.True(t, ok)
}

func TestLoaderFallbackWhenPayloadNotArray(t *testing.T) {
	path := writeDataset(t, `{"players": []}`)
	store := NewStore()
	loader := NewLoader(store, []Source{FileSource{Path: path}}, discardLogger())

	assert.False(t, loader.Load(context.Background()))
	_, ok := store.Get("Erling Haaland")
	assert.True(t, ok)
}

func TestFallbackDatasetSkillsComplete(t *testing.T) {
	for _, entry := range fallbackDataset() {
		assert.Len(t, entry.rating.Skills, 25, "player %s", entry.name)
		require.NotNil(t, entry.rating.SofifaID, "player %s", entry.name)
		assert.NotEmpty(t, entry.rating.SofifaURL, "player %s", entry.name)
	}
}
