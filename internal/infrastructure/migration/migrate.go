// Package migration applies the SQL schema in migrations/ with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator runs schema migrations against one database
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// New creates a Migrator over an open postgres connection
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{migrate: m, logger: logger.Named("migrate")}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")
	return m.finish("up", m.migrate.Up())
}

// Down rolls back every applied migration
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")
	return m.finish("down", m.migrate.Down())
}

// Steps applies n migrations; a negative n rolls back
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))
	return m.finish("steps", m.migrate.Steps(n))
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))
	return m.finish(fmt.Sprintf("goto %d", version), m.migrate.Migrate(version))
}

// Version returns the applied version; 0 means nothing is applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything. It is the way
// out of a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

func (m *Migrator) finish(op string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed",
		zap.String("op", op),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
