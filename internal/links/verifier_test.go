package links

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifier(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.records[42] = Record{MediaID: 42, Code: "Xk9p_Q", ExpiresAt: now.Add(TTL), ContentType: "video/mp4"}
	store.records[7] = Record{MediaID: 7, Code: "old000", ExpiresAt: now.Add(-time.Second), ContentType: "audio/ogg"}
	store.records[8] = Record{MediaID: 8, Code: "edge00", ExpiresAt: now, ContentType: "audio/ogg"}

	tests := []struct {
		name    string
		id      int64
		code    string
		at      time.Time
		wantErr error
	}{
		{"correct code before expiry", 42, "Xk9p_Q", now, nil},
		{"wrong code", 42, "WRONG", now, ErrAccessDenied},
		{"prefix of code", 42, "Xk9p", now, ErrAccessDenied},
		{"empty code", 42, "", now, ErrAccessDenied},
		{"case differs", 42, "xk9p_q", now, ErrAccessDenied},
		{"unknown id", 99, "Xk9p_Q", now, ErrAccessDenied},
		{"expired", 7, "old000", now, ErrAccessDenied},
		{"last valid second", 8, "edge00", now.Add(999 * time.Millisecond), nil},
		{"one second later", 8, "edge00", now.Add(time.Second), ErrAccessDenied},
		{"two days later", 42, "Xk9p_Q", now.Add(48 * time.Hour), ErrAccessDenied},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := NewVerifier(store).WithClock(fixedClock(tt.at))
			rec, err := v.Verify(context.Background(), tt.id, tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Verify() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && rec.MediaID != tt.id {
				t.Errorf("Verify() record id = %d, want %d", rec.MediaID, tt.id)
			}
		})
	}
}

func TestVerifierPropagatesStoreFailure(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.err = errStoreDown
	_, err := NewVerifier(store).Verify(context.Background(), 1, "abcdef")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("Verify() error = %v, want store error", err)
	}
	if errors.Is(err, ErrAccessDenied) {
		t.Fatal("store failure must not look like a deny")
	}
}
