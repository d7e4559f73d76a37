package media

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FromMessage extracts the attachment of a Telegram message.
// It returns false when the message carries no supported media.
func FromMessage(msg *tgbotapi.Message) (Inbound, bool) {
	if msg == nil {
		return Inbound{}, false
	}
	in := Inbound{MessageID: msg.MessageID}
	if msg.Chat != nil {
		in.ChatID = msg.Chat.ID
	}
	switch {
	case msg.Document != nil:
		in.Kind = KindDocument
		in.FileID, in.FileUniqueID = msg.Document.FileID, msg.Document.FileUniqueID
		in.FileName, in.Mime = msg.Document.FileName, msg.Document.MimeType
		in.SizeBytes = int64(msg.Document.FileSize)
	case msg.Video != nil:
		in.Kind = KindVideo
		in.FileID, in.FileUniqueID = msg.Video.FileID, msg.Video.FileUniqueID
		in.FileName, in.Mime = msg.Video.FileName, msg.Video.MimeType
		in.SizeBytes = int64(msg.Video.FileSize)
	case msg.Audio != nil:
		in.Kind = KindAudio
		in.FileID, in.FileUniqueID = msg.Audio.FileID, msg.Audio.FileUniqueID
		in.FileName, in.Mime = msg.Audio.FileName, msg.Audio.MimeType
		in.SizeBytes = int64(msg.Audio.FileSize)
	case msg.Voice != nil:
		in.Kind = KindVoice
		in.FileID, in.FileUniqueID = msg.Voice.FileID, msg.Voice.FileUniqueID
		in.Mime = msg.Voice.MimeType
		in.SizeBytes = int64(msg.Voice.FileSize)
	case len(msg.Photo) > 0:
		photo := pickPhoto(msg.Photo)
		in.Kind = KindPhoto
		in.FileID, in.FileUniqueID = photo.FileID, photo.FileUniqueID
		in.SizeBytes = int64(photo.FileSize)
	default:
		return Inbound{}, false
	}
	return in, true
}

// FileRef returns the file id and unique id of whatever media msg carries.
func FileRef(msg *tgbotapi.Message) (string, string) {
	in, ok := FromMessage(msg)
	if !ok {
		return "", ""
	}
	return in.FileID, in.FileUniqueID
}

// pickPhoto returns the largest rendition of a photo.
func pickPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.FileSize > best.FileSize {
			best = item
			continue
		}
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}
