package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/nsnodes/backend/internal/infrastructure/config"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var errUsage = errors.New("usage")

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	log.Info("Migration CLI started",
		zap.String("command", args[0]),
		zap.String("migrations_path", path),
	)

	if err := run(log, path, args); err != nil {
		if errors.Is(err, errUsage) {
			log.Error("Invalid arguments", zap.Error(err))
			printUsage()
			os.Exit(1)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// run executes one CLI command. create and list work on the directory only;
// every other command opens the configured database.
func run(log *zap.Logger, path string, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "create":
		return createMigration(log, path, rest)
	case "list":
		return listMigrations(log, path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		n, err := intArg(rest, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		v, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: version must not be negative", errUsage)
		}
		return m.GoTo(uint(v))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
		return nil
	case "force":
		v, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		log.Warn("Forcing migration version, the schema is not checked")
		return m.Force(v)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func createMigration(log *zap.Logger, path string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: migration name required", errUsage)
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(path, args[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func listMigrations(log *zap.Logger, path string) error {
	migrations, err := migration.ListMigrations(path)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		log.Info("No migrations found")
		return nil
	}

	log.Info("Available migrations", zap.Int("count", len(migrations)))
	for _, m := range migrations {
		fmt.Println("  -", m)
	}
	return nil
}

// intArg parses the first positional argument as an integer
func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errUsage, what, args[0])
	}
	return n, nil
}

// resolveMigrationsPath returns the absolute migrations directory. Without an
// explicit path it tries ./migrations, then the directory two levels above
// the executable.
func resolveMigrationsPath(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func printUsage() {
	fmt.Println(`nsnodes database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  steps <n>             Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  NSN_DATABASE_HOST, NSN_DATABASE_PORT, NSN_DATABASE_USER,
  NSN_DATABASE_PASSWORD, NSN_DATABASE_DBNAME, NSN_DATABASE_SSLMODE

Examples:
  migrate up
  migrate steps -1
  migrate create add_event_indexes "Index events by source"
  migrate version`)
}
