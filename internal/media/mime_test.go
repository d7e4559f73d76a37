package media

import "testing"

func TestContentType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Inbound
		want string
	}{
		{"declared wins", Inbound{Kind: KindVideo, Mime: "video/webm"}, "video/webm"},
		{"declared whitespace", Inbound{Kind: KindVideo, Mime: "  "}, "video/mp4"},
		{"video", Inbound{Kind: KindVideo}, "video/mp4"},
		{"voice", Inbound{Kind: KindVoice}, "audio/ogg"},
		{"photo", Inbound{Kind: KindPhoto}, "image/jpeg"},
		{"audio", Inbound{Kind: KindAudio}, "audio/mpeg"},
		{"document", Inbound{Kind: KindDocument}, DefaultMime},
		{"unknown", Inbound{Kind: KindUnknown}, DefaultMime},
		{"empty kind", Inbound{}, DefaultMime},
		{"bogus kind", Inbound{Kind: Kind("sticker")}, DefaultMime},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ContentType(tt.in); got != tt.want {
				t.Errorf("ContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindMimeTotal(t *testing.T) {
	t.Parallel()
	for _, k := range []Kind{KindDocument, KindVideo, KindAudio, KindPhoto, KindVoice, KindUnknown} {
		first := KindMime(k)
		if first == "" {
			t.Errorf("KindMime(%q) is empty", k)
		}
		if again := KindMime(k); again != first {
			t.Errorf("KindMime(%q) not deterministic: %q vs %q", k, first, again)
		}
	}
}

func TestIsAudio(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"audio/mpeg":       true,
		"Audio/OGG":        true,
		"video/mp4":        false,
		"application/json": false,
		"":                 false,
	}
	for mime, want := range cases {
		if got := IsAudio(mime); got != want {
			t.Errorf("IsAudio(%q) = %v, want %v", mime, got, want)
		}
	}
}

func TestFallbackFileName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		id   int64
		mime string
		want string
	}{
		{42, "video/mp4", "file_42.mp4"},
		{7, "audio/ogg; codecs=opus", "file_7.ogg"},
		{9, "application/x-unknown", "file_9.bin"},
		{1, "", "file_1.bin"},
	}
	for _, tt := range tests {
		if got := FallbackFileName(tt.id, tt.mime); got != tt.want {
			t.Errorf("FallbackFileName(%d, %q) = %q, want %q", tt.id, tt.mime, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	if got := ParseKind(" Video "); got != KindVideo {
		t.Errorf("ParseKind() = %q", got)
	}
	if got := ParseKind("sticker"); got != KindUnknown {
		t.Errorf("ParseKind() = %q", got)
	}
}
