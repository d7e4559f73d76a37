package modules

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"golang.org/x/time/rate"

	dbembed "github.com/fdlbot/fdl/db"
	"github.com/fdlbot/fdl/internal/boot"
	"github.com/fdlbot/fdl/internal/bot"
	"github.com/fdlbot/fdl/internal/config"
	"github.com/fdlbot/fdl/internal/db"
	"github.com/fdlbot/fdl/internal/logger"
)

// ConfigPath is the config file location supplied by the command line.
type ConfigPath string

var InfraModule = fx.Module(
	"infra",
	fx.Provide(
		provideConfig,
		provideLogger,
		boot.ProvideRuntimeConfig,
		provideDB,
		provideBotAPI,
		provideLimiter,
	),
)

var FxLogger = fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
})

func provideConfig(path ConfigPath) (config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

// provideDB migrates the schema to the latest version and opens the shared handle.
func provideDB(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, rc *boot.RuntimeConfig) (*db.Handle, error) {
	migrateLog := log.With(slog.String("component", "migrate"))
	if err := db.RunMigrate(migrateLog, rc.DatabaseURL, dbembed.MigrationsFS, "up", nil); err != nil {
		return nil, err
	}
	handle, err := db.Open(context.Background(), rc.DatabaseURL, cfg.Database.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return handle.Close()
		},
	})
	return handle, nil
}

func provideBotAPI(log *slog.Logger, cfg config.Config, rc *boot.RuntimeConfig) (*tgbotapi.BotAPI, error) {
	return bot.NewAPI(log, rc.BotToken, rc.APIEndpoint, bot.RequestTimeout(cfg.Telegram.PollTimeout, rc.FetchTimeout))
}

// provideLimiter is shared by the bot front and the archive relay so both
// stay under one Bot API budget.
func provideLimiter(cfg config.Config) *rate.Limiter {
	return bot.NewLimiter(cfg.Telegram.SendRate)
}
