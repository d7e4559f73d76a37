// Package boot provides runtime configuration and dependency wiring for the bot server.
package boot

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fdlbot/fdl/internal/config"
)

// ErrMissingSetting is returned when a required startup setting is absent.
var ErrMissingSetting = errors.New("missing required setting")

// RuntimeConfig holds parsed runtime settings.
// Values may be overridden by environment variables (e.g. BOT_TOKEN, DATABASE_URL, HTTP_ADDR).
type RuntimeConfig struct {
	ServerAddr    string
	BaseURL       string
	BotToken      string
	ArchiveChatID int64
	APIEndpoint   string
	DatabaseURL   string
	FetchTimeout  time.Duration
	IdleTimeout   time.Duration
}

// ProvideRuntimeConfig builds RuntimeConfig from the given config, applies env overrides
// and validates that every required setting is present.
func ProvideRuntimeConfig(cfg config.Config) (*RuntimeConfig, error) {
	return buildRuntimeConfig(cfg, os.Getenv)
}

func buildRuntimeConfig(cfg config.Config, getenv func(string) string) (*RuntimeConfig, error) {
	ret := &RuntimeConfig{
		ServerAddr:    cfg.Server.Addr,
		BaseURL:       cfg.Server.BaseURL,
		BotToken:      cfg.Telegram.BotToken,
		ArchiveChatID: cfg.Telegram.ArchiveChatID,
		APIEndpoint:   cfg.Telegram.APIEndpoint,
		DatabaseURL:   cfg.Database.URL,
	}

	if value := getenv("HTTP_ADDR"); value != "" {
		ret.ServerAddr = value
	}
	if value := getenv("WEB_BASE_URL"); value != "" {
		ret.BaseURL = value
	}
	if value := getenv("BOT_TOKEN"); value != "" {
		ret.BotToken = value
	}
	if value := getenv("TELEGRAM_API_ENDPOINT"); value != "" {
		ret.APIEndpoint = value
	}
	if value := getenv("DATABASE_URL"); value != "" {
		ret.DatabaseURL = value
	}
	if value := strings.TrimSpace(getenv("LOG_CHANNEL_ID")); value != "" {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_CHANNEL_ID: %w", err)
		}
		ret.ArchiveChatID = id
	}

	if strings.TrimSpace(ret.BotToken) == "" {
		return nil, fmt.Errorf("%w: telegram bot token", ErrMissingSetting)
	}
	if ret.ArchiveChatID == 0 {
		return nil, fmt.Errorf("%w: archive chat id", ErrMissingSetting)
	}
	if strings.TrimSpace(ret.DatabaseURL) == "" {
		return nil, fmt.Errorf("%w: database url", ErrMissingSetting)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(ret.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: public base url", ErrMissingSetting)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", ret.BaseURL)
	}
	ret.BaseURL = baseURL

	fetchTimeout, err := time.ParseDuration(cfg.Archive.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid archive fetch timeout: %w", err)
	}
	idleTimeout, err := time.ParseDuration(cfg.Archive.IdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid archive idle timeout: %w", err)
	}
	ret.FetchTimeout = fetchTimeout
	ret.IdleTimeout = idleTimeout
	return ret, nil
}
