// Package roster persists the club tracker's state: squad players, match
// results, finance entries, and bans. One club per database — rows carry no
// tenant column.
package roster

import (
	"fmt"
	"strings"
	"time"
)

// Player is a squad member. Overall mirrors the last resolved rating so the
// squad list renders without a ratings lookup; it is refreshed on demand.
type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	ShirtNo   *int      `json:"shirtNo,omitempty"`
	Overall   *int      `json:"overall,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the fields a client can submit.
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.ShirtNo != nil && (*p.ShirtNo < 1 || *p.ShirtNo > 99) {
		return fmt.Errorf("shirt number must be between 1 and 99")
	}
	if p.Overall != nil && (*p.Overall < 0 || *p.Overall > 99) {
		return fmt.Errorf("overall must be between 0 and 99")
	}
	return nil
}

// MatchRecord is one played match.
type MatchRecord struct {
	ID           int       `json:"id"`
	Opponent     string    `json:"opponent"`
	Competition  string    `json:"competition,omitempty"`
	Home         bool      `json:"home"`
	GoalsFor     int       `json:"goalsFor"`
	GoalsAgainst int       `json:"goalsAgainst"`
	PlayedAt     time.Time `json:"playedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate checks the fields a client can submit.
func (m *MatchRecord) Validate() error {
	if strings.TrimSpace(m.Opponent) == "" {
		return fmt.Errorf("opponent is required")
	}
	if m.GoalsFor < 0 || m.GoalsAgainst < 0 {
		return fmt.Errorf("goals cannot be negative")
	}
	return nil
}

// Result returns "W", "D", or "L" from the club's perspective.
func (m *MatchRecord) Result() string {
	switch {
	case m.GoalsFor > m.GoalsAgainst:
		return "W"
	case m.GoalsFor < m.GoalsAgainst:
		return "L"
	default:
		return "D"
	}
}

// FinanceEntry is one ledger line. Amounts are cents; negative is spend.
type FinanceEntry struct {
	ID         int       `json:"id"`
	Amount     int64     `json:"amount"`
	Category   string    `json:"category"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate checks the fields a client can submit.
func (f *FinanceEntry) Validate() error {
	if f.Amount == 0 {
		return fmt.Errorf("amount cannot be zero")
	}
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

// Ban suspends a player for a number of matches. MatchesRemaining counts
// down as matches are recorded; a ban at zero is spent but kept for history.
type Ban struct {
	ID               int       `json:"id"`
	PlayerName       string    `json:"playerName"`
	Reason           string    `json:"reason,omitempty"`
	MatchesRemaining int       `json:"matchesRemaining"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Validate checks the fields a client can submit.
func (b *Ban) Validate() error {
	if strings.TrimSpace(b.PlayerName) == "" {
		return fmt.Errorf("player name is required")
	}
	if b.MatchesRemaining < 1 {
		return fmt.Errorf("matches remaining must be at least 1")
	}
	return nil
}
