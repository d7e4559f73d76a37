package links

import (
	"fmt"
	"strings"
	"time"

	"github.com/fdlbot/fdl/internal/db"
	"github.com/fdlbot/fdl/internal/db/sqlc"
	"github.com/fdlbot/fdl/internal/media"
)

// NewStore returns the record store matching the handle's driver.
func NewStore(h *db.Handle) (Store, error) {
	if h == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	switch h.Driver {
	case db.DriverPostgres:
		return NewPostgresStore(sqlc.New(h.Pool)), nil
	case db.DriverSQLite:
		return NewSQLiteStore(h.SQL), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", h.Driver)
	}
}

// normalizeRecord validates rec before it is written and fills the default content type.
func normalizeRecord(rec Record, now time.Time) (Record, error) {
	if rec.MediaID <= 0 {
		return Record{}, fmt.Errorf("media id is required")
	}
	if strings.TrimSpace(rec.Code) == "" {
		return Record{}, fmt.Errorf("code is required")
	}
	if rec.ExpiresAt.Unix() < now.Unix() {
		return Record{}, ErrExpiryInPast
	}
	if strings.TrimSpace(rec.ContentType) == "" {
		rec.ContentType = media.DefaultMime
	}
	return rec, nil
}

func recordFromRow(row sqlc.File) Record {
	return Record{
		MediaID:     row.MediaID,
		Code:        row.Code,
		ExpiresAt:   time.Unix(row.ExpireTime, 0).UTC(),
		ContentType: row.Mime,
	}
}
