package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/touchline/touchline-data/internal/roster"
)

// Snapshot is the on-disk club export format. Dates are free-form strings
// so exports from spreadsheets and older tools import without massaging.
type Snapshot struct {
	Players  []SnapshotPlayer  `json:"players"`
	Matches  []SnapshotMatch   `json:"matches"`
	Finances []SnapshotFinance `json:"finances"`
	Bans     []SnapshotBan     `json:"bans"`
}

type SnapshotPlayer struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	ShirtNo  *int   `json:"shirtNo"`
	Overall  *int   `json:"overall"`
	Notes    string `json:"notes"`
}

type SnapshotMatch struct {
	Opponent     string `json:"opponent"`
	Competition  string `json:"competition"`
	Home         bool   `json:"home"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	PlayedAt     string `json:"playedAt"`
}

type SnapshotFinance struct {
	Amount     int64  `json:"amount"`
	Category   string `json:"category"`
	Note       string `json:"note"`
	OccurredAt string `json:"occurredAt"`
}

type SnapshotBan struct {
	PlayerName       string `json:"playerName"`
	Reason           string `json:"reason"`
	MatchesRemaining int    `json:"matchesRemaining"`
}

// ImportFile reads a snapshot file and imports it. Bad records are skipped
// and reported in the result; only an unreadable or unparsable file fails.
func ImportFile(ctx context.Context, store *roster.Store, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ImportResult{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return Import(ctx, store, &snap), nil
}

// Import writes a snapshot into the roster store. Each record is validated
// and inserted independently so one bad row does not sink the rest.
func Import(ctx context.Context, store *roster.Store, snap *Snapshot) ImportResult {
	var result ImportResult

	for i, sp := range snap.Players {
		p := roster.Player{
			Name:     sp.Name,
			Position: sp.Position,
			ShirtNo:  sp.ShirtNo,
			Overall:  sp.Overall,
			Notes:    sp.Notes,
		}
		if err := p.Validate(); err != nil {
			result.AddErrorf("player[%d]: %v", i, err)
			continue
		}
		if err := store.CreatePlayer(ctx, &p); err != nil {
			result.AddErrorf("player[%d] %q: %v", i, sp.Name, err)
			continue
		}
		result.PlayersImported++
	}

	for i, sm := range snap.Matches {
		playedAt, err := parseWhen(sm.PlayedAt)
		if err != nil {
			result.AddErrorf("match[%d]: playedAt: %v", i, err)
			continue
		}
		m := roster.MatchRecord{
			Opponent:     sm.Opponent,
			Competition:  sm.Competition,
			Home:         sm.Home,
			GoalsFor:     sm.GoalsFor,
			GoalsAgainst: sm.GoalsAgainst,
			PlayedAt:     playedAt,
		}
		if err := m.Validate(); err != nil {
			result.AddErrorf("match[%d]: %v", i, err)
			continue
		}
		if err := store.CreateMatch(ctx, &m); err != nil {
			result.AddErrorf("match[%d] vs %q: %v", i, sm.Opponent, err)
			continue
		}
		result.MatchesImported++
	}

	for i, sf := range snap.Finances {
		occurredAt, err := parseWhen(sf.OccurredAt)
		if err != nil {
			result.AddErrorf("finance[%d]: occurredAt: %v", i, err)
			continue
		}
		f := roster.FinanceEntry{
			Amount:     sf.Amount,
			Category:   sf.Category,
			Note:       sf.Note,
			OccurredAt: occurredAt,
		}
		if err := f.Validate(); err != nil {
			result.AddErrorf("finance[%d]: %v", i, err)
			continue
		}
		if err := store.CreateFinanceEntry(ctx, &f); err != nil {
			result.AddErrorf("finance[%d] %q: %v", i, sf.Category, err)
			continue
		}
		result.FinancesImported++
	}

	for i, sb := range snap.Bans {
		b := roster.Ban{
			PlayerName:       sb.PlayerName,
			Reason:           sb.Reason,
			MatchesRemaining: sb.MatchesRemaining,
		}
		if err := b.Validate(); err != nil {
			result.AddErrorf("ban[%d]: %v", i, err)
			continue
		}
		if err := store.CreateBan(ctx, &b); err != nil {
			result.AddErrorf("ban[%d] %q: %v", i, sb.PlayerName, err)
			continue
		}
		result.BansImported++
	}

	return result
}

// parseWhen accepts any date format dateparse recognizes. An empty string
// means "now" so hand-edited snapshots stay minimal.
func parseWhen(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	return dateparse.ParseAny(s)
}
