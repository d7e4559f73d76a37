package sessions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	sqliteDeleteBotSessions   = `DELETE FROM bot_sessions`
	sqliteInsertBotSession    = `INSERT INTO bot_sessions (session_data, updated_at) VALUES (?, ?)`
	sqliteGetLatestBotSession = `SELECT session_data FROM bot_sessions ORDER BY id DESC LIMIT 1`
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	var blob []byte
	if err := s.db.QueryRowContext(ctx, sqliteGetLatestBotSession).Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return State{}, ErrNoSession
		}
		return State{}, err
	}
	return Decode(blob)
}

func (s *SQLiteStore) Save(ctx context.Context, st State) error {
	blob, err := Encode(st)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, sqliteDeleteBotSessions); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, sqliteInsertBotSession, blob, time.Now().Unix()); err != nil {
		return err
	}
	return tx.Commit()
}
