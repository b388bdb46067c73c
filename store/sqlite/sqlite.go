/*
Package sqlite provides SQLite-backed persistence for the dashboard.

PURPOSE:
  Implements the two storage interfaces the system needs:

  board.SnapshotStore: the latest full dashboard snapshot
  sheets.ConfigStore:  the sync endpoint configuration

  The snapshot is stored as the same versioned JSON envelope used for
  export/import, so the database, the export file, and the in-memory
  state all share one format.

KEY TABLES:
  snapshot:         single row (id = 1) holding the latest snapshot
  snapshot_history: append-only trail of committed autosaves; pruned to
                    a bounded length so a chatty editor cannot grow the
                    kiosk database without limit
  sync_config:      single row (id = 1), independent of the snapshot so
                    export/import never moves credentials

WAL MODE:
  SQLite is opened with WAL for better crash recovery on a kiosk box
  that gets powered off by the wall switch.

CONCURRENCY:
  Uses sync.RWMutex around the handle; writers are the debounced
  autosaver and the occasional settings save, so contention is nil.

USAGE:
  st, err := sqlite.New("./safety-board.db")
  if err != nil { log.Fatal(err) }
  defer st.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/plantops/safety-board/board"
	"github.com/plantops/safety-board/sheets"
)

// historyKeep bounds the snapshot_history table.
const historyKeep = 200

// Store implements snapshot and sync-config persistence over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the
// schema. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Latest snapshot (single row)
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Append-only autosave trail
	CREATE TABLE IF NOT EXISTS snapshot_history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	-- Sync endpoint configuration (single row, separate from snapshot)
	CREATE TABLE IF NOT EXISTS sync_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		endpoint TEXT NOT NULL,
		write_token TEXT NOT NULL,
		pull_interval_sec INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT STORE
// =============================================================================

// SaveSnapshot overwrites the latest snapshot and appends to the
// history trail in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap board.PersistedSnapshot) error {
	payload, err := snap.Encode()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	savedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(payload), savedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_history (payload, saved_at) VALUES (?, ?)
	`, string(payload), savedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM snapshot_history
		WHERE seq <= (SELECT MAX(seq) FROM snapshot_history) - ?
	`, historyKeep); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSnapshot returns the latest snapshot, or (nil, nil) when nothing
// has been saved or the stored payload fails the version check.
func (s *Store) LoadSnapshot(ctx context.Context) (*board.PersistedSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap, err := board.DecodeSnapshot([]byte(payload))
	if err != nil {
		// Structurally invalid stored state reads as absent; the caller
		// seeds defaults, matching the import fail-closed policy.
		return nil, nil
	}
	return snap, nil
}

// =============================================================================
// SYNC CONFIG STORE
// =============================================================================

// SaveConfig overwrites the stored sync configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg sheets.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = cfg.Normalized()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_config (id, endpoint, write_token, pull_interval_sec) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			endpoint = excluded.endpoint,
			write_token = excluded.write_token,
			pull_interval_sec = excluded.pull_interval_sec
	`, cfg.Endpoint, cfg.WriteToken, cfg.PullIntervalSec)
	return err
}

// LoadConfig returns the stored configuration, or (nil, nil) when none
// has been saved yet.
func (s *Store) LoadConfig(ctx context.Context) (*sheets.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cfg sheets.Config
	err := s.db.QueryRowContext(ctx, `
		SELECT endpoint, write_token, pull_interval_sec FROM sync_config WHERE id = 1
	`).Scan(&cfg.Endpoint, &cfg.WriteToken, &cfg.PullIntervalSec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	return &cfg, nil
}

// HistoryLen reports the number of retained autosave entries.
func (s *Store) HistoryLen(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_history`).Scan(&n)
	return n, err
}

var (
	_ board.SnapshotStore = (*Store)(nil)
	_ sheets.ConfigStore  = (*Store)(nil)
)
