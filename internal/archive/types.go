// Package archive forwards inbound media into the private archive chat and
// streams it back out by archive message id.
package archive

import (
	"context"
	"errors"
	"io"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fdlbot/fdl/internal/media"
)

var (
	// ErrNotFound is returned when the archive does not know a media id.
	ErrNotFound = errors.New("archived media not found")
	// ErrTooLarge is returned when the Bot API refuses to hand out a file because of its size.
	ErrTooLarge = errors.New("archived media too large to fetch")
)

// Object is an open stream of archived bytes. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	// Size is -1 when unknown.
	Size int64
}

// Entry is the catalog row written for every archived message.
type Entry struct {
	MediaID      int64
	FileID       string
	FileUniqueID string
	FileName     string
	Mime         string
	SizeBytes    int64
	Kind         media.Kind
	ArchivedAt   time.Time
}

// Catalog remembers how to reach the file behind each archived message.
type Catalog interface {
	Put(ctx context.Context, e Entry) error
	Get(ctx context.Context, mediaID int64) (Entry, error)
	Delete(ctx context.Context, mediaID int64) error
}

// Relay archives media and retrieves it again.
type Relay interface {
	Archive(ctx context.Context, in media.Inbound) (int64, error)
	Fetch(ctx context.Context, mediaID int64) (Object, error)
	Delete(ctx context.Context, mediaID int64) error
}

// BotAPI is the subset of *tgbotapi.BotAPI the relay uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}
