package links

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fdlbot/fdl/internal/db/sqlc"
)

const (
	sqliteUpsertFile = `INSERT INTO files (media_id, code, expire_time, mime)
VALUES (?, ?, ?, ?)
ON CONFLICT (media_id) DO UPDATE SET
  code = excluded.code,
  expire_time = excluded.expire_time,
  mime = excluded.mime`
	sqliteGetFile            = `SELECT media_id, code, expire_time, mime FROM files WHERE media_id = ?`
	sqliteCountFiles         = `SELECT COUNT(*) FROM files`
	sqliteDeleteExpiredFiles = `DELETE FROM files WHERE expire_time < ?`
)

// SQLiteStore keeps link records in an embedded SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now Clock
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Upsert(ctx context.Context, rec Record) error {
	rec, err := normalizeRecord(rec, s.now())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqliteUpsertFile, rec.MediaID, rec.Code, rec.ExpiresAt.Unix(), rec.ContentType)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, mediaID int64) (Record, error) {
	var row sqlc.File
	err := s.db.QueryRowContext(ctx, sqliteGetFile, mediaID).Scan(&row.MediaID, &row.Code, &row.ExpireTime, &row.Mime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return recordFromRow(row), nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, sqliteCountFiles).Scan(&count)
	return count, err
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqliteDeleteExpiredFiles, before.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
