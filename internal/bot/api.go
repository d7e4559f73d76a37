package bot

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// API is the part of *tgbotapi.BotAPI the bot front uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RequestTimeout bounds a single Bot API round trip. Long polls hold the
// request open for pollTimeout seconds, so the bound sits on top of that.
func RequestTimeout(pollTimeout int, slack time.Duration) time.Duration {
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	if slack <= 0 {
		slack = 30 * time.Second
	}
	return time.Duration(pollTimeout)*time.Second + slack
}

// NewAPI connects to the Bot API and routes the library's logging into slog.
// An empty endpoint selects the public Telegram server. timeout bounds every
// call made through the returned client; see RequestTimeout.
func NewAPI(log *slog.Logger, token, endpoint string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := tgbotapi.SetLogger(&slogBotLogger{log: log.With(slog.String("component", "tgbotapi"))}); err != nil {
		return nil, err
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := &http.Client{Timeout: timeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	log.Info("bot api connected", slog.String("username", api.Self.UserName))
	return api, nil
}

// NewLimiter returns the limiter shared by every outbound Bot API call.
// A non-positive rate disables throttling.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
