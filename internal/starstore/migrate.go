package starstore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrateUp applies every pending migration under migrationsFS. Unlike the
// radar store this package was modeled on, starstore's schema is a single
// table with no baselining or legacy-detection path: a fresh deployment
// always starts empty.
func (s *Store) migrateUp(migrationsFS fs.FS) error {
	m, err := s.newMigrate(migrationsFS)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("starstore: migration up failed: %w", err)
	}
	return nil
}

func (s *Store) newMigrate(migrationsFS fs.FS) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("starstore: iofs source driver: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("starstore: sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("starstore: new migrate instance: %w", err)
	}
	return m, nil
}
