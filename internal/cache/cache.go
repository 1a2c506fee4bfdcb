// Package cache implements the persistent, schema-versioned collection cache
// backing the offline controllers. Entries are whole-payload JSON snapshots;
// a version mismatch or decode failure reads as a miss and the bad entry is
// dropped. Cache I/O never fails the caller: the cache is an optimization,
// not a source of truth.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion stamps every write. Bump it whenever a cached payload shape
// changes; old entries then self-expire as misses.
const SchemaVersion = "1"

// Store is a sqlite-backed key/value cache of serialized collections.
type Store struct {
	db      *sql.DB
	version string
}

// Open creates or opens the cache database at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	s := &Store{db: db, version: SchemaVersion}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		key            TEXT PRIMARY KEY,
		schema_version TEXT NOT NULL,
		written_at     TEXT NOT NULL,
		payload        BLOB NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate cache: %w", err)
	}
	return nil
}

// Load reads the entry for key into dst. A missing entry, a schema version
// written by a different build, or an undecodable payload all report false;
// the two failure shapes also delete the entry so it cannot re-fail forever.
func (s *Store) Load(key string, dst any) bool {
	var version string
	var payload []byte
	err := s.db.QueryRow(
		"SELECT schema_version, payload FROM cache_entries WHERE key = ?", key,
	).Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
		return false
	}

	if version != s.version {
		slog.Debug("cache version mismatch", "key", key, "have", version, "want", s.version)
		s.Clear(key)
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		slog.Warn("cache payload corrupt", "key", key, "error", err)
		s.Clear(key)
		return false
	}
	return true
}

// Store replaces the entry for key with v, stamped with the current schema
// version and time. Failures are logged and absorbed.
func (s *Store) Store(key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO cache_entries (key, schema_version, written_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			written_at = excluded.written_at,
			payload = excluded.payload
	`, key, s.version, time.Now().UTC().Format(time.RFC3339), payload)
	if err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

// Clear removes the entry for key.
func (s *Store) Clear(key string) {
	if _, err := s.db.Exec("DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		slog.Warn("cache clear failed", "key", key, "error", err)
	}
}

// ClearAll removes every entry.
func (s *Store) ClearAll() {
	if _, err := s.db.Exec("DELETE FROM cache_entries"); err != nil {
		slog.Warn("cache clear failed", "error", err)
	}
}

// WrittenAt reports when the entry for key was last written, if it exists.
func (s *Store) WrittenAt(key string) (time.Time, bool) {
	var raw string
	err := s.db.QueryRow("SELECT written_at FROM cache_entries WHERE key = ?", key).Scan(&raw)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
