package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrate applies or rolls back database migrations.
// migrationsFS holds one directory per driver ("postgres", "sqlite") with .sql files at its root.
// Supported commands: "up", "down", "version", "force N".
func RunMigrate(logger *slog.Logger, databaseURL string, migrationsFS fs.FS, command string, args []string) error {
	switch command {
	case "up", "down", "version", "force":
	default:
		return fmt.Errorf("unknown migrate command: %s (use: up, down, version, force)", command)
	}
	if command == "force" && len(args) == 0 {
		return fmt.Errorf("force requires a version number argument")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m, err := newMigrator(databaseURL, migrationsFS)
	if err != nil {
		return err
	}
	defer m.Close()

	m.Log = &migrateLogger{logger: logger}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		ver, dirty, _ := m.Version()
		logger.Info("migration complete", slog.Uint64("version", uint64(ver)), slog.Bool("dirty", dirty))

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		logger.Info("all migrations rolled back")

	case "version":
		ver, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		logger.Info("current version", slog.Uint64("version", uint64(ver)), slog.Bool("dirty", dirty))

	case "force":
		var version int
		if _, err := fmt.Sscanf(args[0], "%d", &version); err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("migrate force: %w", err)
		}
		logger.Info("forced version", slog.Int("version", version))
	}

	return nil
}

func newMigrator(databaseURL string, migrationsFS fs.FS) (*migrate.Migrate, error) {
	if migrationsFS == nil {
		return nil, fmt.Errorf("migrations are not configured")
	}
	driver, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	sourceDriver, err := iofs.New(migrationsFS, string(driver))
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	if driver == DriverPostgres {
		m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("migrate init: %w", err)
		}
		return m, nil
	}

	// The sqlite migrate driver closes its *sql.DB on Close, so it gets its own connection.
	sqlDB, err := OpenSQLite(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	dbDriver, err := sqlite.WithInstance(sqlDB, &sqlite.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(DriverSQLite), dbDriver)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return m, nil
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
