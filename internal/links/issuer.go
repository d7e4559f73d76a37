package links

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fdlbot/fdl/internal/media"
	"github.com/fdlbot/fdl/internal/metrics"
)

// Issuer archives inbound media and hands out links to it.
type Issuer struct {
	relay   Relay
	store   Store
	baseURL string
	now     Clock
	newCode func() (string, error)
	logger  *slog.Logger
}

func NewIssuer(log *slog.Logger, relay Relay, store Store, baseURL string) *Issuer {
	if log == nil {
		log = slog.Default()
	}
	return &Issuer{
		relay:   relay,
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		newCode: GenerateCode,
		logger:  log.With(slog.String("service", "links")),
	}
}

// WithClock replaces the issuer's time source.
func (s *Issuer) WithClock(now Clock) *Issuer {
	s.now = now
	return s
}

// Issue archives in and stores a fresh record for it, replacing any earlier code.
// An archive failure wraps ErrIssuance and leaves the store untouched.
func (s *Issuer) Issue(ctx context.Context, in media.Inbound) (Links, error) {
	contentType := media.ContentType(in)

	code, err := s.newCode()
	if err != nil {
		metrics.IssueFailures.WithLabelValues("code").Inc()
		return Links{}, fmt.Errorf("generate code: %w", err)
	}

	mediaID, err := s.relay.Archive(ctx, in)
	if err != nil {
		metrics.IssueFailures.WithLabelValues("archive").Inc()
		return Links{}, fmt.Errorf("%w: %w", ErrIssuance, err)
	}

	rec := Record{
		MediaID:     mediaID,
		Code:        code,
		ExpiresAt:   s.now().Add(TTL),
		ContentType: contentType,
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		metrics.IssueFailures.WithLabelValues("store").Inc()
		s.logger.Error("media archived without link record",
			slog.Int64("media_id", mediaID),
			slog.Any("error", err),
		)
		return Links{}, fmt.Errorf("store link record: %w", err)
	}

	metrics.LinksIssued.WithLabelValues(string(in.Kind)).Inc()
	s.logger.Info("links issued",
		slog.Int64("media_id", mediaID),
		slog.String("kind", string(in.Kind)),
		slog.String("content_type", contentType),
	)
	out := s.links(rec)
	out.SizeBytes = in.SizeBytes
	return out, nil
}

func (s *Issuer) links(rec Record) Links {
	out := Links{
		MediaID:      rec.MediaID,
		Code:         rec.Code,
		ContentType:  rec.ContentType,
		Stream:       BuildURL(s.baseURL, RouteStream, rec.MediaID, rec.Code),
		Download:     BuildURL(s.baseURL, RouteDownload, rec.MediaID, rec.Code),
		StreamPlayer: BuildURL(s.baseURL, RouteStreamPlayer, rec.MediaID, rec.Code),
	}
	if media.IsAudio(rec.ContentType) {
		out.Play = BuildURL(s.baseURL, RoutePlayer, rec.MediaID, rec.Code)
	}
	return out
}
