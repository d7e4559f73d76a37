package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fdlbot/fdl/internal/db"
	"github.com/fdlbot/fdl/internal/db/sqlc"
	"github.com/fdlbot/fdl/internal/media"
)

// NewCatalog returns the catalog matching the handle's driver.
func NewCatalog(h *db.Handle) (Catalog, error) {
	if h == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	switch h.Driver {
	case db.DriverPostgres:
		return NewPostgresCatalog(sqlc.New(h.Pool)), nil
	case db.DriverSQLite:
		return NewSQLiteCatalog(h.SQL), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", h.Driver)
	}
}

type PostgresCatalog struct {
	queries *sqlc.Queries
}

func NewPostgresCatalog(queries *sqlc.Queries) *PostgresCatalog {
	return &PostgresCatalog{queries: queries}
}

func (c *PostgresCatalog) Put(ctx context.Context, e Entry) error {
	return c.queries.UpsertArchivedMedia(ctx, sqlc.UpsertArchivedMediaParams{
		MediaID:      e.MediaID,
		FileID:       e.FileID,
		FileUniqueID: e.FileUniqueID,
		FileName:     e.FileName,
		Mime:         e.Mime,
		SizeBytes:    e.SizeBytes,
		Kind:         string(e.Kind),
		ArchivedAt:   db.TimeToPg(e.ArchivedAt),
	})
}

func (c *PostgresCatalog) Get(ctx context.Context, mediaID int64) (Entry, error) {
	row, err := c.queries.GetArchivedMedia(ctx, mediaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return Entry{
		MediaID:      row.MediaID,
		FileID:       row.FileID,
		FileUniqueID: row.FileUniqueID,
		FileName:     row.FileName,
		Mime:         row.Mime,
		SizeBytes:    row.SizeBytes,
		Kind:         media.ParseKind(row.Kind),
		ArchivedAt:   db.TimeFromPg(row.ArchivedAt),
	}, nil
}

func (c *PostgresCatalog) Delete(ctx context.Context, mediaID int64) error {
	return c.queries.DeleteArchivedMedia(ctx, mediaID)
}

const (
	sqliteUpsertArchivedMedia = `INSERT INTO archived_media (media_id, file_id, file_unique_id, file_name, mime, size_bytes, kind, archived_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (media_id) DO UPDATE SET
  file_id = excluded.file_id,
  file_unique_id = excluded.file_unique_id,
  file_name = excluded.file_name,
  mime = excluded.mime,
  size_bytes = excluded.size_bytes,
  kind = excluded.kind,
  archived_at = excluded.archived_at`
	sqliteGetArchivedMedia = `SELECT media_id, file_id, file_unique_id, file_name, mime, size_bytes, kind, archived_at
FROM archived_media WHERE media_id = ?`
	sqliteDeleteArchivedMedia = `DELETE FROM archived_media WHERE media_id = ?`
)

type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

func (c *SQLiteCatalog) Put(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, sqliteUpsertArchivedMedia,
		e.MediaID, e.FileID, e.FileUniqueID, e.FileName, e.Mime, e.SizeBytes, string(e.Kind), e.ArchivedAt.Unix())
	return err
}

func (c *SQLiteCatalog) Get(ctx context.Context, mediaID int64) (Entry, error) {
	var (
		e          Entry
		kind       string
		archivedAt int64
	)
	err := c.db.QueryRowContext(ctx, sqliteGetArchivedMedia, mediaID).Scan(
		&e.MediaID, &e.FileID, &e.FileUniqueID, &e.FileName, &e.Mime, &e.SizeBytes, &kind, &archivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	e.Kind = media.ParseKind(kind)
	e.ArchivedAt = db.UnixToTime(archivedAt)
	return e, nil
}

func (c *SQLiteCatalog) Delete(ctx context.Context, mediaID int64) error {
	_, err := c.db.ExecContext(ctx, sqliteDeleteArchivedMedia, mediaID)
	return err
}

// entryFor builds the catalog row for in archived as mediaID.
func entryFor(in media.Inbound, mediaID int64, fileID, uniqueID string, now time.Time) Entry {
	if fileID == "" {
		fileID = in.FileID
	}
	if uniqueID == "" {
		uniqueID = in.FileUniqueID
	}
	return Entry{
		MediaID:      mediaID,
		FileID:       fileID,
		FileUniqueID: uniqueID,
		FileName:     in.FileName,
		Mime:         media.ContentType(in),
		SizeBytes:    in.SizeBytes,
		Kind:         in.Kind,
		ArchivedAt:   now,
	}
}
