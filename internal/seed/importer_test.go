package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso date", "2026-08-15", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{"us format", "8/15/2026", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{"written month", "Aug 15, 2026", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWhen(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseWhenEmptyDefaultsToNow(t *testing.T) {
	before := time.Now()
	got, err := parseWhen("  ")
	require.NoError(t, err)
	assert.False(t, got.Before(before))
}

func TestParseWhenRejectsGarbage(t *testing.T) {
	_, err := parseWhen("not a date")
	assert.Error(t, err)
}

func TestImportResultSummary(t *testing.T) {
	r := ImportResult{PlayersImported: 4, MatchesImported: 2}
	r.AddError("match[1]: opponent is required")

	other := ImportResult{FinancesImported: 3, BansImported: 1}
	r.Add(other)

	assert.Equal(t, "players=4 matches=2 finances=3 bans=1 errors=1", r.Summary())
}

func TestDemoSnapshotIsValid(t *testing.T) {
	snap := DemoSnapshot()
	require.NotEmpty(t, snap.Players)

	for _, sp := range snap.Players {
		assert.NotEmpty(t, sp.Name)
	}
	for _, sm := range snap.Matches {
		_, err := parseWhen(sm.PlayedAt)
		assert.NoError(t, err, "match vs %s", sm.Opponent)
	}
	for _, sf := range snap.Finances {
		assert.NotZero(t, sf.Amount)
		assert.NotEmpty(t, sf.Category)
	}
	for _, sb := range snap.Bans {
		assert.GreaterOrEqual(t, sb.MatchesRemaining, 1)
	}
}
