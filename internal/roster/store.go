package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Store runs all roster queries through prepared statements registered on
// the pool (see internal/db).
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

// ListPlayers returns the squad ordered by shirt number, then name.
func (s *Store) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.pool.Query(ctx, "roster_players_list")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.ShirtNo, &p.Overall,
			&p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer fetches one player by id.
func (s *Store) GetPlayer(ctx context.Context, id int) (*Player, error) {
	var p Player
	err := s.pool.QueryRow(ctx, "roster_player_get", id).Scan(
		&p.ID, &p.Name, &p.Position, &p.ShirtNo, &p.Overall,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return &p, nil
}

// CreatePlayer inserts a player and fills its generated id and timestamps.
func (s *Store) CreatePlayer(ctx context.Context, p *Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, "roster_player_insert",
		p.Name, p.Position, p.ShirtNo, p.Overall, p.Notes).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// UpdatePlayer rewrites a player's editable fields.
func (s *Store) UpdatePlayer(ctx context.Context, p *Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, "roster_player_update",
		p.ID, p.Name, p.Position, p.ShirtNo, p.Overall, p.Notes)
	if err != nil {
		return fmt.Errorf("update player %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlayer removes a player.
func (s *Store) DeletePlayer(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "roster_player_delete", id)
	if err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------------------------------
// Matches
// --------------------------------------------------------------------------

// ListMatches returns matches most recent first.
func (s *Store) ListMatches(ctx context.Context) ([]MatchRecord, error) {
	rows, err := s.pool.Query(ctx, "roster_matches_list")
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(&m.ID, &m.Opponent, &m.Competition, &m.Home,
			&m.GoalsFor, &m.GoalsAgainst, &m.PlayedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// CreateMatch records a played match and decrements every active ban by one.
func (s *Store) CreateMatch(ctx context.Context, m *MatchRecord) error {
	if err := m.Validate(); err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, "roster_match_insert",
		m.Opponent, m.Competition, m.Home, m.GoalsFor, m.GoalsAgainst, m.PlayedAt).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if _, err := tx.Exec(ctx, "roster_bans_decrement"); err != nil {
		return fmt.Errorf("decrement bans: %w", err)
	}
	return tx.Commit(ctx)
}

// DeleteMatch removes a match record.
func (s *Store) DeleteMatch(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "roster_match_delete", id)
	if err != nil {
		return fmt.Errorf("delete match %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------------------------------
// Finances
// --------------------------------------------------------------------------

// ListFinances returns ledger entries most recent first.
func (s *Store) ListFinances(ctx context.Context) ([]FinanceEntry, error) {
	rows, err := s.pool.Query(ctx, "roster_finances_list")
	if err != nil {
		return nil, fmt.Errorf("list finances: %w", err)
	}
	defer rows.Close()

	var entries []FinanceEntry
	for rows.Next() {
		var f FinanceEntry
		if err := rows.Scan(&f.ID, &f.Amount, &f.Category, &f.Note,
			&f.OccurredAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan finance entry: %w", err)
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

// Balance sums the ledger in cents.
func (s *Store) Balance(ctx context.Context) (int64, error) {
	var balance int64
	if err := s.pool.QueryRow(ctx, "roster_finances_balance").Scan(&balance); err != nil {
		return 0, fmt.Errorf("finance balance: %w", err)
	}
	return balance, nil
}

// CreateFinanceEntry appends a ledger line.
func (s *Store) CreateFinanceEntry(ctx context.Context, f *FinanceEntry) error {
	if err := f.Validate(); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, "roster_finance_insert",
		f.Amount, f.Category, f.Note, f.OccurredAt).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert finance entry: %w", err)
	}
	return nil
}

// DeleteFinanceEntry removes a ledger line.
func (s *Store) DeleteFinanceEntry(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "roster_finance_delete", id)
	if err != nil {
		return fmt.Errorf("delete finance entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------------------------------
// Bans
// --------------------------------------------------------------------------

// ListBans returns all bans, active first.
func (s *Store) ListBans(ctx context.Context) ([]Ban, error) {
	rows, err := s.pool.Query(ctx, "roster_bans_list")
	if err != nil {
		return nil, fmt.Errorf("list bans: %w", err)
	}
	defer rows.Close()

	var bans []Ban
	for rows.Next() {
		var b Ban
		if err := rows.Scan(&b.ID, &b.PlayerName, &b.Reason,
			&b.MatchesRemaining, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ban: %w", err)
		}
		bans = append(bans, b)
	}
	return bans, rows.Err()
}

// CreateBan records a suspension.
func (s *Store) CreateBan(ctx context.Context, b *Ban) error {
	if err := b.Validate(); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, "roster_ban_insert",
		b.PlayerName, b.Reason, b.MatchesRemaining).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ban: %w", err)
	}
	return nil
}

// DeleteBan lifts a ban.
func (s *Store) DeleteBan(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "roster_ban_delete", id)
	if err != nil {
		return fmt.Errorf("delete ban %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
