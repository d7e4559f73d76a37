package media

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMessage(t *testing.T) {
	chat := &tgbotapi.Chat{ID: -100123}
	tests := []struct {
		name string
		msg  *tgbotapi.Message
		want Inbound
	}{
		{
			name: "document",
			msg: &tgbotapi.Message{MessageID: 5, Chat: chat, Document: &tgbotapi.Document{
				FileID: "doc", FileUniqueID: "u-doc", FileName: "report.pdf", MimeType: "application/pdf", FileSize: 2048,
			}},
			want: Inbound{Kind: KindDocument, ChatID: -100123, MessageID: 5, FileID: "doc", FileUniqueID: "u-doc",
				FileName: "report.pdf", Mime: "application/pdf", SizeBytes: 2048},
		},
		{
			name: "video without mime",
			msg:  &tgbotapi.Message{MessageID: 6, Chat: chat, Video: &tgbotapi.Video{FileID: "vid", FileSize: 10}},
			want: Inbound{Kind: KindVideo, ChatID: -100123, MessageID: 6, FileID: "vid", SizeBytes: 10},
		},
		{
			name: "voice",
			msg:  &tgbotapi.Message{MessageID: 7, Chat: chat, Voice: &tgbotapi.Voice{FileID: "v", MimeType: "audio/ogg"}},
			want: Inbound{Kind: KindVoice, ChatID: -100123, MessageID: 7, FileID: "v", Mime: "audio/ogg"},
		},
		{
			name: "audio",
			msg:  &tgbotapi.Message{MessageID: 8, Chat: chat, Audio: &tgbotapi.Audio{FileID: "a", FileName: "song.mp3"}},
			want: Inbound{Kind: KindAudio, ChatID: -100123, MessageID: 8, FileID: "a", FileName: "song.mp3"},
		},
		{
			name: "photo picks largest",
			msg: &tgbotapi.Message{MessageID: 9, Chat: chat, Photo: []tgbotapi.PhotoSize{
				{FileID: "small", Width: 90, Height: 90, FileSize: 100},
				{FileID: "large", Width: 1280, Height: 720, FileSize: 9000},
				{FileID: "medium", Width: 320, Height: 180, FileSize: 800},
			}},
			want: Inbound{Kind: KindPhoto, ChatID: -100123, MessageID: 9, FileID: "large", SizeBytes: 9000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromMessage(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMessageWithoutMedia(t *testing.T) {
	_, ok := FromMessage(&tgbotapi.Message{MessageID: 1, Text: "hello"})
	assert.False(t, ok)
	_, ok = FromMessage(nil)
	assert.False(t, ok)

	id, unique := FileRef(&tgbotapi.Message{Text: "hi"})
	assert.Empty(t, id)
	assert.Empty(t, unique)
}
