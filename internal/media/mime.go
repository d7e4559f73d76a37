package media

import (
	"strconv"
	"strings"
)

// ContentType returns the content type links for this media are served with.
// A declared MIME type wins; otherwise the kind decides.
func ContentType(in Inbound) string {
	if declared := strings.TrimSpace(in.Mime); declared != "" {
		return declared
	}
	return KindMime(in.Kind)
}

// KindMime is the fallback content type for a kind without a declared MIME type.
func KindMime(kind Kind) string {
	switch kind {
	case KindVideo:
		return "video/mp4"
	case KindVoice:
		return "audio/ogg"
	case KindPhoto:
		return "image/jpeg"
	case KindAudio:
		return "audio/mpeg"
	default:
		return DefaultMime
	}
}

// IsAudio reports whether mime names an audio type.
func IsAudio(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "audio/")
}

// FallbackFileName synthesizes a download name for media without an original filename.
func FallbackFileName(mediaID int64, mime string) string {
	return "file_" + strconv.FormatInt(mediaID, 10) + ExtensionFromMime(mime)
}

// ExtensionFromMime returns the conventional extension for mime, or ".bin".
func ExtensionFromMime(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	switch strings.ToLower(strings.TrimSpace(base)) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/x-matroska":
		return ".mkv"
	case "video/quicktime":
		return ".mov"
	case "application/pdf":
		return ".pdf"
	case "application/zip":
		return ".zip"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}
