// Package links issues and verifies time-limited access links for archived media.
package links

import (
	"context"
	"errors"
	"time"

	"github.com/fdlbot/fdl/internal/media"
)

// TTL is how long an issued link stays valid.
const TTL = 24 * time.Hour

var (
	// ErrIssuance is returned when media could not be archived for a new link.
	ErrIssuance = errors.New("link issuance failed")
	// ErrAccessDenied covers every reason a presented link is refused.
	ErrAccessDenied = errors.New("invalid or expired link")
	// ErrRecordNotFound is returned by stores for an unknown media id.
	ErrRecordNotFound = errors.New("link record not found")
	// ErrExpiryInPast rejects records that would already be expired when written.
	ErrExpiryInPast = errors.New("link expiry is in the past")
)

// Record binds an access code and a content type to an archived media id.
type Record struct {
	MediaID     int64     `json:"media_id"`
	Code        string    `json:"code"`
	ExpiresAt   time.Time `json:"expires_at"`
	ContentType string    `json:"content_type"`
}

// Expired reports whether the record is no longer valid at now.
// Expiry has second granularity and the last second is still valid.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt.Unix() < now.Unix()
}

// Links is the set of URLs handed back to the user for one media item.
type Links struct {
	MediaID      int64  `json:"media_id"`
	Code         string `json:"code"`
	ContentType  string `json:"content_type"`
	Stream       string `json:"stream"`
	Download     string `json:"download"`
	StreamPlayer string `json:"stream_player"`
	// Play is set only for audio.
	Play      string `json:"play,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// Store persists link records.
type Store interface {
	// Upsert creates or fully replaces the record for rec.MediaID.
	Upsert(ctx context.Context, rec Record) error
	Get(ctx context.Context, mediaID int64) (Record, error)
	Count(ctx context.Context) (int64, error)
	// DeleteExpired removes records that expired before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Relay moves inbound media into the archive.
type Relay interface {
	Archive(ctx context.Context, in media.Inbound) (int64, error)
}

// Clock returns the current time.
type Clock func() time.Time
