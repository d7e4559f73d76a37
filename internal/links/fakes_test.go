package links

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fdlbot/fdl/internal/media"
)

type memStore struct {
	mu      sync.Mutex
	records map[int64]Record
	upserts int
	err     error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int64]Record)}
}

func (s *memStore) Upsert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.upserts++
	s.records[rec.MediaID] = rec
	return nil
}

func (s *memStore) Get(_ context.Context, mediaID int64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Record{}, s.err
	}
	rec, ok := s.records[mediaID]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return rec, nil
}

func (s *memStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), s.err
}

func (s *memStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rec := range s.records {
		if rec.ExpiresAt.Before(before) {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

// fakeRelay archives every message under its own message id, like a forward
// into an empty channel would.
type fakeRelay struct {
	mu       sync.Mutex
	nextID   int64
	fixedID  int64
	err      error
	archived []media.Inbound
}

func (r *fakeRelay) Archive(_ context.Context, in media.Inbound) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.archived = append(r.archived, in)
	if r.fixedID != 0 {
		return r.fixedID, nil
	}
	r.nextID++
	return r.nextID, nil
}

var errStoreDown = errors.New("store unavailable")

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
