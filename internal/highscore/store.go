// Package highscore persists finished games and the best score in SQLite.
package highscore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a requested game does not exist.
var ErrNotFound = errors.New("game not found")

// ErrAlreadyRecorded is returned when a session has already been stored.
var ErrAlreadyRecorded = errors.New("game already recorded")

// Game is one finished game.
type Game struct {
	SessionID  uuid.UUID
	Score      int
	Lines      int
	FinishedAt time.Time
}

// Store persists games and the high score.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// HighScore returns the best recorded score.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var score int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return score, nil
}

// Record stores a finished game and raises the high score if it was beaten.
// It reports whether the game set a new high score.
func (s *Store) Record(ctx context.Context, game Game) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	if game.SessionID == uuid.Nil {
		return false, fmt.Errorf("session id is required")
	}
	if game.Score < 0 || game.Lines < 0 {
		return false, fmt.Errorf("score and lines must not be negative")
	}
	finishedAt := game.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO games (session_id, score, lines, finished_at) VALUES (?, ?, ?, ?)`,
		game.SessionID.String(),
		game.Score,
		game.Lines,
		toMillis(finishedAt),
	)
	if err != nil {
		if isConstraintError(err) {
			return false, ErrAlreadyRecorded
		}
		return false, fmt.Errorf("insert game: %w", err)
	}

	res, err := tx.ExecContext(
		ctx,
		`UPDATE high_score SET score = ?, updated_at = ? WHERE id = 1 AND score < ?`,
		game.Score,
		toMillis(finishedAt),
		game.Score,
	)
	if err != nil {
		return false, fmt.Errorf("update high score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update high score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit record: %w", err)
	}
	return affected > 0, nil
}

// Reset sets the high score back to zero. Recorded games are kept.
func (s *Store) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE high_score SET score = 0, updated_at = ? WHERE id = 1`,
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}
	return nil
}

// Game returns one recorded game.
func (s *Store) Game(ctx context.Context, id uuid.UUID) (Game, error) {
	if err := ctx.Err(); err != nil {
		return Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Game{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, score, lines, finished_at FROM games WHERE session_id = ?`,
		id.String(),
	)
	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Game{}, ErrNotFound
		}
		return Game{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

// Recent returns up to limit games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT session_id, score, lines, finished_at
		   FROM games
		  ORDER BY finished_at DESC, session_id
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (Game, error) {
	var (
		game       Game
		sessionID  string
		finishedAt int64
	)
	if err := row.Scan(&sessionID, &game.Score, &game.Lines, &finishedAt); err != nil {
		return Game{}, err
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return Game{}, fmt.Errorf("parse session id: %w", err)
	}
	game.SessionID = id
	game.FinishedAt = fromMillis(finishedAt)
	return game, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "games.session_id")
}
