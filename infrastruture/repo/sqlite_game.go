package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beka-birhanu/minesweeper-api/game"
	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteFileName = "minesweeper.db"
	// Fixed width so that text order matches time order.
	sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// SQLiteGameRepo is a GameRepo for single node deployments. The engine state
// is stored as a JSON document next to the columns used for lookups.
type SQLiteGameRepo struct {
	conn *sql.DB
}

// NewSQLiteGameRepo opens (and creates if needed) the database in dataDir.
func NewSQLiteGameRepo(dataDir string) (*SQLiteGameRepo, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", filepath.Join(dataDir, sqliteFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	if err := initGameTables(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteGameRepo{conn: conn}, nil
}

var _ i.GameRepo = &SQLiteGameRepo{}

func initGameTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			state TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_games_player_created
		ON games(player_id, created_at);
	`)
	return err
}

// Save inserts or replaces the game row.
func (r *SQLiteGameRepo) Save(ctx context.Context, g *game.Game) error {
	state := g.State()
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", state.ID, err)
	}

	_, err = r.conn.ExecContext(ctx, `
		INSERT INTO games (id, player_id, status, created_at, updated_at, state)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at,
			state = excluded.state
	`,
		state.ID.String(),
		state.PlayerID.String(),
		state.Status,
		state.CreatedAt.UTC().Format(sqliteTimeLayout),
		time.Now().UTC().Format(sqliteTimeLayout),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving game %s: %w", state.ID, err)
	}
	return nil
}

// ByID loads and restores a game.
func (r *SQLiteGameRepo) ByID(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	var payload string
	err := r.conn.QueryRowContext(ctx, `SELECT state FROM games WHERE id = ?`, id.String()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, i.ErrGameNotFound
		}
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	return decodeGame(payload)
}

// ByPlayer lists the player's games, newest first.
func (r *SQLiteGameRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Game, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT state FROM games
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, playerID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("listing games of %s: %w", playerID, err)
	}
	defer rows.Close()

	var games []*game.Game
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning game row: %w", err)
		}
		g, err := decodeGame(payload)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Close closes the database.
func (r *SQLiteGameRepo) Close() error {
	return r.conn.Close()
}

func decodeGame(payload string) (*game.Game, error) {
	var state game.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("decoding game state: %w", err)
	}
	return game.Restore(state)
}
