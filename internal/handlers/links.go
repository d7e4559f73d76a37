package handlers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fdlbot/fdl/internal/archive"
	"github.com/fdlbot/fdl/internal/links"
	"github.com/fdlbot/fdl/internal/media"
	"github.com/fdlbot/fdl/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const deniedMessage = "Invalid or expired link"

// LinkVerifier checks a presented media id and code.
type LinkVerifier interface {
	Verify(ctx context.Context, mediaID int64, code string) (links.Record, error)
}

// ArchiveFetcher opens archived media for streaming.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, mediaID int64) (archive.Object, error)
}

// LinkHandler redeems issued links: it streams archived media and serves the player pages.
type LinkHandler struct {
	verifier LinkVerifier
	fetcher  ArchiveFetcher
	logger   *slog.Logger
}

func NewLinkHandler(log *slog.Logger, verifier LinkVerifier, fetcher ArchiveFetcher) *LinkHandler {
	return &LinkHandler{
		verifier: verifier,
		fetcher:  fetcher,
		logger:   log.With(slog.String("handler", "links")),
	}
}

func (h *LinkHandler) Register(e *echo.Echo) {
	e.GET("/"+links.RouteStream+"/:media_id", h.Stream)
	e.GET("/"+links.RouteDownload+"/:media_id", h.Download)
	e.GET("/"+links.RoutePlayer+"/:media_id", h.Player)
	e.GET("/"+links.RouteStreamPlayer+"/:media_id", h.StreamPlayer)
}

// Stream serves the media inline.
func (h *LinkHandler) Stream(c echo.Context) error {
	return h.serve(c, links.RouteStream, false)
}

// Download serves the media as an attachment.
func (h *LinkHandler) Download(c echo.Context) error {
	return h.serve(c, links.RouteDownload, true)
}

// Player renders the audio page. Only audio records may use it.
func (h *LinkHandler) Player(c echo.Context) error {
	rec, err := h.verify(c, links.RoutePlayer)
	if err != nil {
		return err
	}
	if !media.IsAudio(rec.ContentType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Not an audio file")
	}
	return h.render(c, "player.html", rec)
}

// StreamPlayer renders the video page with a playback speed selector.
func (h *LinkHandler) StreamPlayer(c echo.Context) error {
	rec, err := h.verify(c, links.RouteStreamPlayer)
	if err != nil {
		return err
	}
	return h.render(c, "stream_player.html", rec)
}

func (h *LinkHandler) verify(c echo.Context, route string) (links.Record, error) {
	mediaID, err := strconv.ParseInt(strings.TrimSpace(c.Param("media_id")), 10, 64)
	if err != nil || mediaID <= 0 {
		metrics.Redemptions.WithLabelValues(route, "deny").Inc()
		return links.Record{}, echo.NewHTTPError(http.StatusNotFound, deniedMessage)
	}
	rec, err := h.verifier.Verify(c.Request().Context(), mediaID, c.QueryParam("code"))
	if err != nil {
		if errors.Is(err, links.ErrAccessDenied) {
			metrics.Redemptions.WithLabelValues(route, "deny").Inc()
			return links.Record{}, echo.NewHTTPError(http.StatusNotFound, deniedMessage)
		}
		metrics.Redemptions.WithLabelValues(route, "error").Inc()
		h.logger.Error("verify link failed", slog.Int64("media_id", mediaID), slog.Any("error", err))
		return links.Record{}, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	metrics.Redemptions.WithLabelValues(route, "allow").Inc()
	return rec, nil
}

func (h *LinkHandler) serve(c echo.Context, route string, attachment bool) error {
	rec, err := h.verify(c, route)
	if err != nil {
		return err
	}
	obj, err := h.fetcher.Fetch(c.Request().Context(), rec.MediaID)
	if err != nil {
		switch {
		case errors.Is(err, archive.ErrNotFound):
			metrics.Redemptions.WithLabelValues(route, "missing").Inc()
			return echo.NewHTTPError(http.StatusNotFound, deniedMessage)
		case errors.Is(err, archive.ErrTooLarge):
			metrics.Redemptions.WithLabelValues(route, "upstream_error").Inc()
			return echo.NewHTTPError(http.StatusBadGateway, "file is too large to relay")
		default:
			metrics.Redemptions.WithLabelValues(route, "upstream_error").Inc()
			h.logger.Error("fetch archived media failed", slog.Int64("media_id", rec.MediaID), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch file")
		}
	}
	defer obj.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, rec.ContentType)
	header.Set("Cache-Control", "private, no-store")
	if obj.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}
	if attachment {
		name := obj.FileName
		if strings.TrimSpace(name) == "" {
			name = media.FallbackFileName(rec.MediaID, rec.ContentType)
		}
		header.Set(echo.HeaderContentDisposition, attachmentDisposition(name))
	}
	c.Response().WriteHeader(http.StatusOK)
	n, err := io.Copy(c.Response().Writer, obj.Body)
	metrics.BytesServed.WithLabelValues(route).Add(float64(n))
	if err != nil {
		h.logger.Warn("stream interrupted", slog.Int64("media_id", rec.MediaID), slog.Int64("bytes", n), slog.Any("error", err))
	}
	return nil
}

type playerPage struct {
	MediaID     int64
	ContentType string
	StreamURL   string
	DownloadURL string
}

func (h *LinkHandler) render(c echo.Context, name string, rec links.Record) error {
	page := playerPage{
		MediaID:     rec.MediaID,
		ContentType: rec.ContentType,
		StreamURL:   links.BuildURL("", links.RouteStream, rec.MediaID, rec.Code),
		DownloadURL: links.BuildURL("", links.RouteDownload, rec.MediaID, rec.Code),
	}
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, page); err != nil {
		h.logger.Error("render page failed", slog.String("template", name), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// attachmentDisposition builds an attachment header with a quoted filename
// stripped of characters that would break the quoting.
func attachmentDisposition(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
	if strings.TrimSpace(clean) == "" {
		clean = "file"
	}
	return `attachment; filename="` + clean + `"`
}
