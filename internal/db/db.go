// Package db provides a pgxpool-based connection pool with prepared
// statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/touchline/touchline-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers every statement the API and import
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Players
		"roster_players_list": `SELECT id, name, position, shirt_no, overall, notes, created_at, updated_at
			FROM players ORDER BY shirt_no NULLS LAST, name`,
		"roster_player_get": `SELECT id, name, position, shirt_no, overall, notes, created_at, updated_at
			FROM players WHERE id = $1`,
		"roster_player_insert": `INSERT INTO players (name, position, shirt_no, overall, notes)
			VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		"roster_player_update": `UPDATE players SET name = $2, position = $3, shirt_no = $4,
			overall = $5, notes = $6, updated_at = NOW() WHERE id = $1`,
		"roster_player_delete": "DELETE FROM players WHERE id = $1",

		// Matches
		"roster_matches_list": `SELECT id, opponent, competition, home, goals_for, goals_against, played_at, created_at
			FROM matches ORDER BY played_at DESC, id DESC`,
		"roster_match_insert": `INSERT INTO matches (opponent, competition, home, goals_for, goals_against, played_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		"roster_match_delete": "DELETE FROM matches WHERE id = $1",

		// Finances
		"roster_finances_list": `SELECT id, amount, category, note, occurred_at, created_at
			FROM finances ORDER BY occurred_at DESC, id DESC`,
		"roster_finances_balance": "SELECT COALESCE(SUM(amount), 0) FROM finances",
		"roster_finance_insert": `INSERT INTO finances (amount, category, note, occurred_at)
			VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		"roster_finance_delete": "DELETE FROM finances WHERE id = $1",

		// Bans
		"roster_bans_list": `SELECT id, player_name, reason, matches_remaining, created_at
			FROM bans ORDER BY matches_remaining > 0 DESC, created_at DESC`,
		"roster_ban_insert": `INSERT INTO bans (player_name, reason, matches_remaining)
			VALUES ($1, $2, $3) RETURNING id, created_at`,
		"roster_ban_delete":     "DELETE FROM bans WHERE id = $1",
		"roster_bans_decrement": "UPDATE bans SET matches_remaining = matches_remaining - 1 WHERE matches_remaining > 0",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
