package sessions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fdlbot/fdl/internal/db/sqlc"
)

type PostgresStore struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, queries: sqlc.New(pool)}
}

func (s *PostgresStore) Load(ctx context.Context) (State, error) {
	row, err := s.queries.GetLatestBotSession(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{}, ErrNoSession
		}
		return State{}, err
	}
	return Decode(row.SessionData)
}

func (s *PostgresStore) Save(ctx context.Context, st State) error {
	blob, err := Encode(st)
	if err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	qtx := s.queries.WithTx(tx)
	if err := qtx.DeleteBotSessions(ctx); err != nil {
		return err
	}
	if err := qtx.InsertBotSession(ctx, blob); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
