// Package storage opens the configured database backend and builds the repositories on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/UnknownOlympus/staffstore/internal/config"
	"github.com/UnknownOlympus/staffstore/internal/metrics"
	"github.com/UnknownOlympus/staffstore/internal/migrations"
	"github.com/UnknownOlympus/staffstore/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
)

// Store bundles an open database with the employee repository built on it.
type Store struct {
	Employees repository.EmployeeRepository

	db      *sql.DB
	dialect string
	ping    func(ctx context.Context) error
	closers []func()
}

// Open connects to the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, appMetrics *metrics.Metrics) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := repository.NewDatabase(
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}

		dtb := stdlib.OpenDBFromPool(pool)

		return &Store{
			Employees: repository.NewPostgresEmployeeRepository(pool, appMetrics),
			db:        dtb,
			dialect:   migrations.DialectPostgres,
			ping:      pool.Ping,
			closers:   []func(){func() { _ = dtb.Close() }, pool.Close},
		}, nil
	case config.DriverSQLite:
		dtb, err := repository.OpenSQLite(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open DB: %w", err)
		}

		return &Store{
			Employees: repository.NewSQLiteEmployeeRepository(dtb, appMetrics),
			db:        dtb,
			dialect:   migrations.DialectSQLite,
			ping:      dtb.PingContext,
			closers:   []func(){func() { _ = dtb.Close() }},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Migrate applies pending schema migrations for the backend.
func (s *Store) Migrate() error {
	return migrations.Up(s.db, s.dialect)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases every connection held by the store.
func (s *Store) Close() {
	for _, closeFn := range s.closers {
		closeFn()
	}
}
