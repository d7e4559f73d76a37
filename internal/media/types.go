// Package media describes inbound Telegram media and maps it to content types.
package media

import "strings"

// Kind classifies the attachment carried by an inbound message.
type Kind string

const (
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindPhoto    Kind = "photo"
	KindVoice    Kind = "voice"
	KindUnknown  Kind = "unknown"
)

// DefaultMime is the content type of anything that cannot be classified.
const DefaultMime = "application/octet-stream"

// Inbound is one attachment seen by the bot, addressed by the chat and
// message it arrived in.
type Inbound struct {
	Kind         Kind
	ChatID       int64
	MessageID    int
	FileID       string
	FileUniqueID string
	FileName     string
	// Mime is the type declared by the sender; may be empty.
	Mime      string
	SizeBytes int64
}

// ParseKind maps a stored kind string back to a Kind; unknown strings yield KindUnknown.
func ParseKind(raw string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindDocument, KindVideo, KindAudio, KindPhoto, KindVoice:
		return k
	default:
		return KindUnknown
	}
}
