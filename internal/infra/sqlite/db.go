// Package sqlite provides SQLite-based persistent storage for the quest board.
// Uses WAL mode for concurrent reads and crash-safe writes. The DB is the
// user+quest repository the lifecycle controller works against; Begin hands
// out a transaction exposing the same repository methods, so one logical
// progression event can be committed as a single unit.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// queries carries the repository methods shared by DB and Tx.
type queries struct {
	q queryer
}

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	queries
	db *sql.DB
}

// Tx is an in-flight transaction exposing the full repository surface.
type Tx struct {
	queries
	tx *sql.Tx
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{queries: queries{q: db}, db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// Begin starts a transaction. Rollback after Commit is a harmless no-op,
// so callers can `defer tx.Rollback()` unconditionally.
func (d *DB) Begin() (*Tx, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{queries: queries{q: tx}, tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. Safe to call after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id                TEXT PRIMARY KEY,
			level             INTEGER NOT NULL DEFAULT 1,
			xp                INTEGER NOT NULL DEFAULT 0,
			coins             INTEGER NOT NULL DEFAULT 0,
			completed_quests  INTEGER NOT NULL DEFAULT 0,
			daily_streak      INTEGER NOT NULL DEFAULT 0,
			last_streak_at    INTEGER,
			last_login_at     INTEGER,
			last_completed_at INTEGER,
			earned_badges     TEXT NOT NULL DEFAULT '[]',
			selected_avatar   TEXT NOT NULL DEFAULT '',
			selected_effect   TEXT NOT NULL DEFAULT '',
			created_at        INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS quests (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			frequency    TEXT NOT NULL,
			due_at       INTEGER,
			completed    BOOLEAN NOT NULL DEFAULT 0,
			completed_at INTEGER,
			reward_xp    INTEGER NOT NULL,
			reward_coins INTEGER NOT NULL,
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quests_user ON quests(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullableUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func unixPtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0)
	return &t
}
