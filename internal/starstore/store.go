// Package starstore persists StaR Map snapshots to a sqlite database, so a
// long-lived ProMis deployment can reuse Monte-Carlo support points across
// restarts instead of resampling every relation from scratch. The schema is
// a single blob table: each snapshot's own gob+gzip encoding (see
// internal/starmap's Save/Load) is stored and retrieved opaquely, keyed by
// name.
package starstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"

	"github.com/kohaut/promis/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a sqlite connection holding named StaR Map snapshots.
type Store struct {
	db *sql.DB
}

// Open opens (and, if needed, migrates) a sqlite database at path for StaR
// Map snapshot storage. path may be ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("starstore: open %s: %w", path, err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("starstore: sub migrations fs: %w", err)
	}
	if err := s.migrateUp(migrations); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("starstore: exec %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// Save stores blob under name, overwriting any prior snapshot of that name.
func (s *Store) Save(name string, blob []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO star_snapshots(name, blob, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(name) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		name, blob,
	)
	if err != nil {
		return fmt.Errorf("starstore: save %q: %w", name, err)
	}
	monitoring.Logf("starstore: saved snapshot %q (%d bytes)", name, len(blob))
	return nil
}

// ErrNotFound indicates no snapshot exists under the requested name.
var ErrNotFound = fmt.Errorf("starstore: snapshot not found")

// Load retrieves the blob stored under name.
func (s *Store) Load(name string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM star_snapshots WHERE name = ?`, name).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("starstore: load %q: %w", name, err)
	}
	return blob, nil
}

// Names lists every snapshot currently stored, in insertion order.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM star_snapshots ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("starstore: list names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the snapshot stored under name, if any.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM star_snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("starstore: delete %q: %w", name, err)
	}
	return nil
}
