// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8080"
	DefaultMaxConns       = 8
	DefaultPollTimeout    = 30
	DefaultSendRate       = 25.0
	DefaultFetchTimeout   = "30s"
	DefaultIdleTimeout    = "60s"
	DefaultReaperSchedule = "@hourly"
	DefaultMetricsPath    = "/metrics"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
	Database DatabaseConfig `toml:"database"`
	Archive  ArchiveConfig  `toml:"archive"`
	Reaper   ReaperConfig   `toml:"reaper"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP listen address and the public base URL used in links.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	BaseURL string `toml:"base_url"`
}

// TelegramConfig holds bot credentials and the archive chat.
// SendRate is the number of outbound Bot API calls allowed per second.
type TelegramConfig struct {
	BotToken      string  `toml:"bot_token"`
	ArchiveChatID int64   `toml:"archive_chat_id"`
	APIEndpoint   string  `toml:"api_endpoint"`
	PollTimeout   int     `toml:"poll_timeout"`
	SendRate      float64 `toml:"send_rate"`
}

// DatabaseConfig holds the storage connection string.
// postgres:// and postgresql:// URLs use pgx; sqlite:// URLs use an embedded SQLite file.
type DatabaseConfig struct {
	URL      string `toml:"url"`
	MaxConns int32  `toml:"max_conns"`
}

// ArchiveConfig bounds archive fetches (Go durations, e.g. "30s").
type ArchiveConfig struct {
	FetchTimeout string `toml:"fetch_timeout"`
	IdleTimeout  string `toml:"idle_timeout"`
}

// ReaperConfig controls the optional sweep of expired link records.
type ReaperConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
// A missing file is not an error; required settings are validated later by boot.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Telegram: TelegramConfig{
			PollTimeout: DefaultPollTimeout,
			SendRate:    DefaultSendRate,
		},
		Database: DatabaseConfig{
			MaxConns: DefaultMaxConns,
		},
		Archive: ArchiveConfig{
			FetchTimeout: DefaultFetchTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		Reaper: ReaperConfig{
			Schedule: DefaultReaperSchedule,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyLogEnv(&cfg.Log, os.Getenv)
	return cfg, nil
}

// applyLogEnv lets LOG_LEVEL and LOG_FORMAT override the file so logging is
// configurable before the rest of the runtime settings are validated.
func applyLogEnv(cfg *LogConfig, getenv func(string) string) {
	if value := strings.TrimSpace(getenv("LOG_LEVEL")); value != "" {
		cfg.Level = value
	}
	if value := strings.TrimSpace(getenv("LOG_FORMAT")); value != "" {
		cfg.Format = value
	}
}
