// Package db opens the shared storage handle (PostgreSQL via pgx or embedded SQLite)
// and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// Driver identifies the storage dialect selected by the connection URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// ErrUnsupportedURL is returned for connection strings with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// Handle is the process-wide storage connection. Exactly one of Pool or SQL is set,
// depending on Driver.
type Handle struct {
	Driver Driver
	Pool   *pgxpool.Pool
	SQL    *sql.DB
}

// ParseURL returns the driver for a connection string and the DSN the driver expects.
// sqlite:// URLs map to a filesystem path; postgres URLs are passed through unchanged.
func ParseURL(raw string) (Driver, string, error) {
	value := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(value, "postgres://"), strings.HasPrefix(value, "postgresql://"):
		return DriverPostgres, value, nil
	case strings.HasPrefix(value, "sqlite://"):
		path := strings.TrimPrefix(value, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite path is empty", ErrUnsupportedURL)
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(value))
	}
}

// Open connects to the database named by url. maxConns bounds the pgx pool;
// SQLite always uses a single connection so statements are serialized.
func Open(ctx context.Context, url string, maxConns int32) (*Handle, error) {
	driver, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	switch driver {
	case DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres url: %w", err)
		}
		if maxConns > 0 {
			poolCfg.MaxConns = maxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		return &Handle{Driver: DriverPostgres, Pool: pool}, nil
	default:
		sqlDB, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Handle{Driver: DriverSQLite, SQL: sqlDB}, nil
	}
}

// OpenSQLite opens (creating if needed) the SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := sqlDB.ExecContext(ctx, pragma); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	return sqlDB, nil
}

// Ping checks that the underlying connection is usable.
func (h *Handle) Ping(ctx context.Context) error {
	if h == nil {
		return errors.New("database not configured")
	}
	if h.Pool != nil {
		return h.Pool.Ping(ctx)
	}
	if h.SQL != nil {
		return h.SQL.PingContext(ctx)
	}
	return errors.New("database not configured")
}

// Close releases the connection.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.SQL != nil {
		return h.SQL.Close()
	}
	return nil
}

// redact hides credentials of URLs echoed in errors.
func redact(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	return raw[:scheme+3] + "***" + raw[at:]
}
