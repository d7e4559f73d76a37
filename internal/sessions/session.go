// Package sessions persists the bot's polling state between restarts.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/fdlbot/fdl/internal/db"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("no saved session")

// State is the bot session carried across restarts.
type State struct {
	// Offset is the next update id to request from getUpdates.
	Offset      int       `cbor:"offset"`
	BotUsername string    `cbor:"bot_username,omitempty"`
	SavedAt     time.Time `cbor:"saved_at"`
}

// Store keeps only the most recent session.
type Store interface {
	Load(ctx context.Context) (State, error)
	// Save replaces any previously saved session.
	Save(ctx context.Context, st State) error
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("sessions: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("sessions: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes st into the stored blob format.
func Encode(st State) ([]byte, error) {
	return encMode.Marshal(st)
}

// Decode parses a stored blob.
func Decode(data []byte) (State, error) {
	var st State
	if len(data) == 0 {
		return State{}, fmt.Errorf("decode session: empty blob")
	}
	if err := decMode.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

// NewStore returns the session store matching the handle's driver.
func NewStore(h *db.Handle) (Store, error) {
	if h == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	switch h.Driver {
	case db.DriverPostgres:
		return NewPostgresStore(h.Pool), nil
	case db.DriverSQLite:
		return NewSQLiteStore(h.SQL), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", h.Driver)
	}
}
