package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratelite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"gator/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending migration for driver. It runs on its own
// connection because the migrate drivers close the handle they are given.
func Migrate(driver, dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("could not load migrations for %s: %w", driver, err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("could not open %s database: %w", driver, err)
	}

	var drv database.Driver
	switch driver {
	case config.DriverPostgres:
		drv, err = migratepg.WithInstance(db, &migratepg.Config{})
	case config.DriverSQLite:
		drv, err = migratelite.WithInstance(db, &migratelite.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("could not prepare migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, drv)
	if err != nil {
		drv.Close()
		return fmt.Errorf("could not prepare migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}
