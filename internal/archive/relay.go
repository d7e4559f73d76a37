package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/fdlbot/fdl/internal/media"
	"github.com/fdlbot/fdl/internal/metrics"
)

const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// RelayConfig configures a TelegramRelay.
type RelayConfig struct {
	ArchiveChatID int64
	BotToken      string
	// FileEndpoint is a format string taking the bot token and the file path.
	FileEndpoint string
	FetchTimeout time.Duration
	IdleTimeout  time.Duration
}

// FileEndpointFor derives the file download endpoint from a Bot API endpoint format.
func FileEndpointFor(apiEndpoint string) string {
	apiEndpoint = strings.TrimSpace(apiEndpoint)
	if apiEndpoint == "" || apiEndpoint == tgbotapi.APIEndpoint {
		return tgbotapi.FileEndpoint
	}
	if base, ok := strings.CutSuffix(apiEndpoint, "/bot%s/%s"); ok {
		return base + "/file/bot%s/%s"
	}
	return tgbotapi.FileEndpoint
}

// TelegramRelay uses a private chat as the archive. The id of the forwarded
// message is the media id.
type TelegramRelay struct {
	api     BotAPI
	catalog Catalog
	limiter *rate.Limiter
	client  *http.Client
	cfg     RelayConfig
	now     func() time.Time
	logger  *slog.Logger
}

func NewTelegramRelay(log *slog.Logger, api BotAPI, catalog Catalog, limiter *rate.Limiter, cfg RelayConfig) *TelegramRelay {
	if log == nil {
		log = slog.Default()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.FileEndpoint == "" {
		cfg.FileEndpoint = tgbotapi.FileEndpoint
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.FetchTimeout
	return &TelegramRelay{
		api:     api,
		catalog: catalog,
		limiter: limiter,
		client:  &http.Client{Transport: transport},
		cfg:     cfg,
		now:     time.Now,
		logger:  log.With(slog.String("service", "archive")),
	}
}

// Archive forwards the message carrying in to the archive chat.
func (r *TelegramRelay) Archive(ctx context.Context, in media.Inbound) (int64, error) {
	if in.ChatID == 0 || in.MessageID == 0 {
		return 0, fmt.Errorf("inbound media has no source message")
	}
	if err := r.wait(ctx); err != nil {
		return 0, err
	}
	forwarded, err := r.api.Send(tgbotapi.NewForward(r.cfg.ArchiveChatID, in.ChatID, in.MessageID))
	metrics.ArchiveOperations.WithLabelValues("archive", metrics.Result(err)).Inc()
	if err != nil {
		return 0, fmt.Errorf("forward to archive: %w", err)
	}
	mediaID := int64(forwarded.MessageID)

	fileID, uniqueID := media.FileRef(&forwarded)
	if err := r.catalog.Put(ctx, entryFor(in, mediaID, fileID, uniqueID, r.now())); err != nil {
		r.logger.Error("catalog write failed, removing archived message",
			slog.Int64("media_id", mediaID),
			slog.Any("error", err),
		)
		if _, derr := r.api.Request(tgbotapi.NewDeleteMessage(r.cfg.ArchiveChatID, forwarded.MessageID)); derr != nil {
			r.logger.Warn("remove archived message failed", slog.Int64("media_id", mediaID), slog.Any("error", derr))
		}
		return 0, fmt.Errorf("record archived media: %w", err)
	}

	r.logger.Info("media archived",
		slog.Int64("media_id", mediaID),
		slog.String("kind", string(in.Kind)),
		slog.Int64("size_bytes", in.SizeBytes),
	)
	return mediaID, nil
}

// Fetch opens a stream of the archived bytes. The stream ends early when the
// upstream stalls for longer than the idle timeout or ctx is cancelled.
func (r *TelegramRelay) Fetch(ctx context.Context, mediaID int64) (Object, error) {
	obj, err := r.fetch(ctx, mediaID)
	metrics.ArchiveOperations.WithLabelValues("fetch", metrics.Result(err)).Inc()
	return obj, err
}

func (r *TelegramRelay) fetch(ctx context.Context, mediaID int64) (Object, error) {
	entry, err := r.catalog.Get(ctx, mediaID)
	if err != nil {
		return Object{}, err
	}
	if err := r.wait(ctx); err != nil {
		return Object{}, err
	}
	file, err := r.getFile(ctx, entry.FileID)
	if err != nil {
		return Object{}, classifyAPIError(err)
	}
	if file.FilePath == "" {
		return Object{}, ErrNotFound
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	url := fmt.Sprintf(r.cfg.FileEndpoint, r.cfg.BotToken, file.FilePath)
	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return Object{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		cancel()
		return Object{}, fmt.Errorf("download archived media: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		cancel()
		return Object{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		_ = resp.Body.Close()
		cancel()
		return Object{}, fmt.Errorf("download archived media: unexpected status %d", resp.StatusCode)
	}

	size := resp.ContentLength
	if size < 0 && file.FileSize > 0 {
		size = int64(file.FileSize)
	}
	return Object{
		Body:        newIdleReader(resp.Body, r.cfg.IdleTimeout, cancel),
		ContentType: entry.Mime,
		FileName:    entry.FileName,
		Size:        size,
	}, nil
}

// Delete removes the archived message and forgets it.
func (r *TelegramRelay) Delete(ctx context.Context, mediaID int64) error {
	if _, err := r.catalog.Get(ctx, mediaID); err != nil {
		return err
	}
	if err := r.wait(ctx); err != nil {
		return err
	}
	_, err := r.api.Request(tgbotapi.NewDeleteMessage(r.cfg.ArchiveChatID, int(mediaID)))
	metrics.ArchiveOperations.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		if err := classifyAPIError(err); !errors.Is(err, ErrNotFound) {
			return err
		}
		r.logger.Warn("archived message already gone", slog.Int64("media_id", mediaID))
	}
	return r.catalog.Delete(ctx, mediaID)
}

// getFile resolves the download path. The library call takes no context, so
// the lookup is abandoned when ctx ends or FetchTimeout passes.
func (r *TelegramRelay) getFile(ctx context.Context, fileID string) (tgbotapi.File, error) {
	type result struct {
		file tgbotapi.File
		err  error
	}
	done := make(chan result, 1)
	go func() {
		file, err := r.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
		done <- result{file: file, err: err}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()
	select {
	case res := <-done:
		return res.file, res.err
	case <-ctx.Done():
		return tgbotapi.File{}, fmt.Errorf("get file: %w", ctx.Err())
	}
}

func (r *TelegramRelay) wait(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}

// classifyAPIError maps Bot API refusals about a file to archive errors.
func classifyAPIError(err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
		return err
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "too big") {
		return fmt.Errorf("%w: %s", ErrTooLarge, apiErr.Message)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
}
