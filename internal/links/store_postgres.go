package links

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fdlbot/fdl/internal/db/sqlc"
)

// PostgresStore keeps link records in PostgreSQL.
type PostgresStore struct {
	queries *sqlc.Queries
	now     Clock
}

func NewPostgresStore(queries *sqlc.Queries) *PostgresStore {
	return &PostgresStore{queries: queries, now: time.Now}
}

func (s *PostgresStore) Upsert(ctx context.Context, rec Record) error {
	rec, err := normalizeRecord(rec, s.now())
	if err != nil {
		return err
	}
	return s.queries.UpsertFile(ctx, sqlc.UpsertFileParams{
		MediaID:    rec.MediaID,
		Code:       rec.Code,
		ExpireTime: rec.ExpiresAt.Unix(),
		Mime:       rec.ContentType,
	})
}

func (s *PostgresStore) Get(ctx context.Context, mediaID int64) (Record, error) {
	row, err := s.queries.GetFile(ctx, mediaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return recordFromRow(row), nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountFiles(ctx)
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return s.queries.DeleteExpiredFiles(ctx, before.Unix())
}
