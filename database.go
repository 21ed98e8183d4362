package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// RunRow is one finished session
type RunRow struct {
	ID              int64
	SessionID       string
	Name            string
	Seed            uint64
	StartedAt       time.Time
	EndedAt         time.Time
	Ticks           uint64
	ShotsFired      int
	EnemiesSpawned  int
	PeakEnemies     int
	PeakProjectiles int
}

// Duration is how long the run lasted
func (r RunRow) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		ticks INTEGER NOT NULL DEFAULT 0,
		shots_fired INTEGER NOT NULL DEFAULT 0,
		enemies_spawned INTEGER NOT NULL DEFAULT 0,
		peak_enemies INTEGER NOT NULL DEFAULT 0,
		peak_projectiles INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		session_id TEXT,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_type ON analytics_events(event_type, created_at);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		log.Error().Err(err).Msg("db migration failed")
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetSetting returns a stored setting, or "" when unset
func (db *DB) GetSetting(key string) string {
	var v string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Str("key", key).Msg("read setting")
	}
	return v
}

// SetSetting stores or replaces a setting
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// RecordRun stores a finished run and returns its row ID
func (db *DB) RecordRun(ctx context.Context, r RunRow) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO runs (session_id, name, seed, started_at, ended_at, ticks,
			shots_fired, enemies_spawned, peak_enemies, peak_projectiles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Name, int64(r.Seed), r.StartedAt.UTC(), r.EndedAt.UTC(), int64(r.Ticks),
		r.ShotsFired, r.EnemiesSpawned, r.PeakEnemies, r.PeakProjectiles,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// RecentRuns returns the most recently finished runs, newest first
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, session_id, name, seed, started_at, ended_at, ticks,
			shots_fired, enemies_spawned, peak_enemies, peak_projectiles
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var r RunRow
		var seed, ticks int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Name, &seed, &r.StartedAt, &r.EndedAt, &ticks,
			&r.ShotsFired, &r.EnemiesSpawned, &r.PeakEnemies, &r.PeakProjectiles); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Ticks = uint64(ticks)
		result = append(result, r)
	}
	return result, rows.Err()
}
