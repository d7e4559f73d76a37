// Package bot is the Telegram front: it polls updates, answers commands and
// turns inbound media into links.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/fdlbot/fdl/internal/links"
	"github.com/fdlbot/fdl/internal/media"
	"github.com/fdlbot/fdl/internal/sessions"
)

const (
	greetingText = "Hello! I'm FDL Bot. Send me a file or use /fdl to generate download links."
	usageText    = "Reply to a media message with /fdl to create links."
	failureText  = "Sorry, failed to process the file. Try again later."
	startupText  = "Bot is now active ✅"

	DefaultPollTimeout  = 30
	DefaultSaveInterval = 30 * time.Second
)

// Issuer creates links for inbound media.
type Issuer interface {
	Issue(ctx context.Context, in media.Inbound) (links.Links, error)
}

// Config configures the bot front.
type Config struct {
	ArchiveChatID int64
	Username      string
	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout  int
	SaveInterval time.Duration
}

type Bot struct {
	api      API
	issuer   Issuer
	sessions sessions.Store
	limiter  *rate.Limiter
	cfg      Config
	logger   *slog.Logger

	mu       sync.Mutex
	offset   int
	saved    int
	cancel   context.CancelFunc
	done     chan struct{}
	inflight sync.WaitGroup
	stopOnce sync.Once
}

func New(log *slog.Logger, api API, issuer Issuer, store sessions.Store, limiter *rate.Limiter, cfg Config) *Bot {
	if log == nil {
		log = slog.Default()
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	if cfg.SaveInterval <= 0 {
		cfg.SaveInterval = DefaultSaveInterval
	}
	return &Bot{
		api:      api,
		issuer:   issuer,
		sessions: store,
		limiter:  limiter,
		cfg:      cfg,
		logger:   log.With(slog.String("service", "bot")),
	}
}

// Start resumes polling from the saved offset and announces itself in the archive chat.
func (b *Bot) Start(ctx context.Context) error {
	if b.done != nil {
		return errors.New("bot already started")
	}
	offset := 0
	if b.sessions != nil {
		st, err := b.sessions.Load(ctx)
		switch {
		case err == nil:
			offset = st.Offset
			b.logger.Info("session restored", slog.Int("offset", offset), slog.Time("saved_at", st.SavedAt))
		case errors.Is(err, sessions.ErrNoSession):
		default:
			b.logger.Warn("load session failed, starting fresh", slog.Any("error", err))
		}
	}
	b.mu.Lock()
	b.offset, b.saved = offset, offset
	b.mu.Unlock()

	if _, err := b.send(ctx, tgbotapi.NewMessage(b.cfg.ArchiveChatID, startupText)); err != nil {
		b.logger.Error("startup notice failed", slog.Int64("chat_id", b.cfg.ArchiveChatID), slog.Any("error", err))
	}

	updateConfig := tgbotapi.NewUpdate(offset)
	updateConfig.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	runCtx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})
	go b.loop(runCtx, updates)
	b.logger.Info("polling started", slog.Int("offset", offset))
	return nil
}

func (b *Bot) loop(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer close(b.done)
	// Updates already taken off the channel run to completion after Stop.
	handleCtx := context.WithoutCancel(ctx)
	ticker := time.NewTicker(b.cfg.SaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.saveSession(ctx)
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("updates channel closed")
				return
			}
			b.advance(update.UpdateID)
			b.inflight.Add(1)
			go func() {
				defer b.inflight.Done()
				b.HandleUpdate(handleCtx, update)
			}()
		}
	}
}

// Stop ends polling, waits for in-flight updates and saves the session.
func (b *Bot) Stop(ctx context.Context) error {
	if b.done == nil {
		return nil
	}
	b.stopOnce.Do(func() {
		b.api.StopReceivingUpdates()
		b.cancel()
	})
	select {
	case <-b.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	waited := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
		b.logger.Warn("stopping with updates still in flight")
	}
	b.saveSession(ctx)
	b.logger.Info("polling stopped")
	return nil
}

// Offset is the next update id the bot will ask for.
func (b *Bot) Offset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offset
}

func (b *Bot) advance(updateID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if updateID+1 > b.offset {
		b.offset = updateID + 1
	}
}

func (b *Bot) saveSession(ctx context.Context) {
	if b.sessions == nil {
		return
	}
	b.mu.Lock()
	offset, saved := b.offset, b.saved
	b.mu.Unlock()
	if offset == saved {
		return
	}
	st := sessions.State{Offset: offset, BotUsername: b.cfg.Username, SavedAt: time.Now().UTC()}
	if err := b.sessions.Save(context.WithoutCancel(ctx), st); err != nil {
		b.logger.Error("save session failed", slog.Any("error", err))
		return
	}
	b.mu.Lock()
	if b.saved < offset {
		b.saved = offset
	}
	b.mu.Unlock()
}

// HandleUpdate processes one update. Panics are recovered and logged.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("update handler panic",
				slog.Int("update_id", update.UpdateID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	if msg.Chat.ID == b.cfg.ArchiveChatID {
		return
	}

	if msg.IsCommand() {
		switch strings.ToLower(msg.Command()) {
		case "start":
			b.reply(ctx, msg, greetingText, nil)
		case "fdl":
			in, ok := media.FromMessage(msg.ReplyToMessage)
			if !ok {
				b.reply(ctx, msg, usageText, nil)
				return
			}
			b.issue(ctx, msg, in)
		}
		return
	}
	if in, ok := media.FromMessage(msg); ok {
		b.issue(ctx, msg, in)
	}
}

func (b *Bot) issue(ctx context.Context, msg *tgbotapi.Message, in media.Inbound) {
	set, err := b.issuer.Issue(ctx, in)
	if err != nil {
		b.logger.Error("issue links failed",
			slog.Int64("chat_id", msg.Chat.ID),
			slog.Int("message_id", in.MessageID),
			slog.Any("error", err),
		)
		b.reply(ctx, msg, failureText, nil)
		return
	}
	keyboard := linksKeyboard(set)
	b.reply(ctx, msg, linksText(set), &keyboard)
}

func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	out.DisableWebPagePreview = true
	if markup != nil {
		out.ReplyMarkup = *markup
	}
	if _, err := b.send(ctx, out); err != nil {
		b.logger.Error("send reply failed", slog.Int64("chat_id", msg.Chat.ID), slog.Any("error", err))
	}
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return tgbotapi.Message{}, fmt.Errorf("rate limit: %w", err)
		}
	}
	return b.api.Send(c)
}

func linksText(set links.Links) string {
	var sb strings.Builder
	sb.WriteString("Links for the media:\n\n")
	sb.WriteString("• Stream: " + set.Stream + "\n")
	sb.WriteString("• Download: " + set.Download + "\n")
	sb.WriteString("• Player: " + set.StreamPlayer)
	if set.Play != "" {
		sb.WriteString("\n• Play: " + set.Play)
	}
	if set.SizeBytes > 0 {
		sb.WriteString("\n• Size: " + humanize.Bytes(uint64(set.SizeBytes)))
	}
	fmt.Fprintf(&sb, "\n\nLinks expire in %d hours.", int(links.TTL.Hours()))
	return sb.String()
}

func linksKeyboard(set links.Links) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("▶️ Stream", set.StreamPlayer),
			tgbotapi.NewInlineKeyboardButtonURL("⬇️ Download", set.Download),
		),
	}
	if set.Play != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🎵 Play", set.Play),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
