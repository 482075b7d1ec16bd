//go:build integration

// Package integration runs the repositories and the HTTP stack against a
// real PostgreSQL started with testcontainers. Run with -tags integration.
package integration

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/nsnodes/backend/internal/domain/event"
	"github.com/nsnodes/backend/internal/domain/society"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// One migrated container serves the whole package; tests isolate by truncating.
var (
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a connection to the shared, migrated test database
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
	t     *testing.T
}

// NewTestDB returns a connection to the shared container, starting and
// migrating it on first use. Tables are truncated before the test runs.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sharedContainerMu.Lock()
	if sharedContainer == nil {
		container, dsn := startPostgres(t)
		sharedContainer = container
		sharedContainerDSN = dsn

		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		sqlDB.Close()
	}
	dsn := sharedContainerDSN
	sharedContainerMu.Unlock()

	db, sqlDB := connectToDatabase(t, dsn)
	tdb := &TestDB{DB: db, SqlDB: sqlDB, DSN: dsn, t: t}
	t.Cleanup(func() {
		_ = tdb.SqlDB.Close()
	})

	tdb.CleanTables()
	return tdb
}

func startPostgres(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("nsnodes_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")
	return container, dsn
}

// CleanTables truncates the directory tables
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE events, societies").Error, "Failed to truncate tables")
}

// InsertEvents stores raw event fixtures
func (tdb *TestDB) InsertEvents(events ...event.RawEvent) {
	tdb.t.Helper()
	for i := range events {
		require.NoError(tdb.t, tdb.DB.Create(&events[i]).Error, "Failed to insert event %q", events[i].Title)
	}
}

// InsertSocieties stores society fixtures
func (tdb *TestDB) InsertSocieties(societies ...society.Society) {
	tdb.t.Helper()
	for i := range societies {
		require.NoError(tdb.t, tdb.DB.Create(&societies[i]).Error, "Failed to insert society %q", societies[i].Name)
	}
}

// connectToDatabase opens a GORM connection. TEST_DB_DEBUG=1 logs every query.
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	return db, sqlDB
}

// newMigrate builds a golang-migrate instance over sqlDB
func newMigrate(t *testing.T, sqlDB *sql.DB) *migrate.Migrate {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	require.NoError(t, err, "Failed to create migrate instance")
	return m
}

func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()
	if err := newMigrate(t, sqlDB).Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath walks up from this file to the module's migrations/
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// CleanupSharedContainer terminates the shared container. Call it from TestMain.
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
