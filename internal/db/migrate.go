package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"hitpulse/db/migrations"
)

// Migrate brings the schema at addr to migrations.Version.
func Migrate(addr string) error {
	return withMigrator(addr, func(mg *migrate.Migrate) error {
		_, dirty, err := mg.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return err
		}
		if dirty {
			return errors.New("database is in dirty state")
		}
		if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	})
}

// Rollback reverts every applied migration.
func Rollback(addr string) error {
	return withMigrator(addr, func(mg *migrate.Migrate) error {
		if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	})
}

// withMigrator opens a database/sql handle through lib/pq, wraps it in a
// migrate instance reading the embedded migrations and runs fn.
func withMigrator(addr string, fn func(*migrate.Migrate) error) error {
	sqlDB, err := sql.Open("postgres", addr)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	defer src.Close()

	mg, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}
	return fn(mg)
}
