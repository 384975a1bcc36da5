package seed

import (
	"context"

	"github.com/touchline/touchline-data/internal/roster"
)

func intp(v int) *int { return &v }

// DemoSnapshot returns a small starter club for local development.
func DemoSnapshot() *Snapshot {
	return &Snapshot{
		Players: []SnapshotPlayer{
			{Name: "Erling Haaland", Position: "ST", ShirtNo: intp(9), Overall: intp(91)},
			{Name: "Kylian Mbappé", Position: "ST", ShirtNo: intp(10), Overall: intp(91)},
			{Name: "Jude Bellingham", Position: "CM", ShirtNo: intp(5), Overall: intp(90)},
			{Name: "Gianluigi Donnarumma", Position: "GK", ShirtNo: intp(1), Overall: intp(89)},
		},
		Matches: []SnapshotMatch{
			{Opponent: "Riverside FC", Competition: "League", Home: true, GoalsFor: 3, GoalsAgainst: 1, PlayedAt: "2026-08-15"},
			{Opponent: "Harbour United", Competition: "League", Home: false, GoalsFor: 0, GoalsAgainst: 0, PlayedAt: "2026-08-22"},
		},
		Finances: []SnapshotFinance{
			{Amount: 500_000_00, Category: "sponsorship", Note: "Season opener deal", OccurredAt: "2026-08-01"},
			{Amount: -120_000_00, Category: "wages", Note: "August payroll", OccurredAt: "2026-08-28"},
		},
		Bans: []SnapshotBan{
			{PlayerName: "Jude Bellingham", Reason: "Accumulated yellow cards", MatchesRemaining: 1},
		},
	}
}

// SeedDemo imports the demo club. Intended for empty databases; rows are
// appended, not replaced.
func SeedDemo(ctx context.Context, store *roster.Store) ImportResult {
	return Import(ctx, store, DemoSnapshot())
}
