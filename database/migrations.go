// Package database provides database migration tooling.
package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // Registers the pgx5:// scheme
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsFromSource returns a migration source driver from the embedded migrations.
func migrationsFromSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Migrator is the interface for the migration tooling.
type Migrator interface {
	Up() error
	Down() error
	Steps(int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

// toMigrateURL rewrites a postgres:// connection string to the pgx5:// scheme of the migrate driver
func toMigrateURL(connString string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

// GetMigrate returns a new migration instance from the given connection string.
func GetMigrate(connString string) (Migrator, error) {
	d, err := migrationsFromSource()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, toMigrateURL(connString))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies num pending migrations, or all of them when num is 0
func MigrateUp(connString string, num uint) error {
	return withMigrate(connString, func(m Migrator) error {
		if num == 0 {
			return m.Up()
		}
		return m.Steps(int(num))
	})
}

// MigrateDown reverts num migrations, or all of them when num is 0
func MigrateDown(connString string, num uint) error {
	return withMigrate(connString, func(m Migrator) error {
		if num == 0 {
			return m.Down()
		}
		return m.Steps(-int(num))
	})
}

// GetVersion returns the current schema version and whether it is dirty
func GetVersion(connString string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := withMigrate(connString, func(m Migrator) error {
		var err error
		version, dirty, err = m.Version()
		return err
	})
	return version, dirty, err
}

func withMigrate(connString string, fn func(Migrator) error) (err error) {
	m, err := GetMigrate(connString)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
