package modules

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/fdlbot/fdl/internal/boot"
	"github.com/fdlbot/fdl/internal/bot"
	"github.com/fdlbot/fdl/internal/config"
	"github.com/fdlbot/fdl/internal/links"
	"github.com/fdlbot/fdl/internal/sessions"
)

var BotModule = fx.Module(
	"bot",
	fx.Provide(provideBot),
	fx.Invoke(startBot),
)

func provideBot(log *slog.Logger, api *tgbotapi.BotAPI, issuer *links.Issuer, store sessions.Store, limiter *rate.Limiter, cfg config.Config, rc *boot.RuntimeConfig) *bot.Bot {
	return bot.New(log, api, issuer, store, limiter, bot.Config{
		ArchiveChatID: rc.ArchiveChatID,
		Username:      api.Self.UserName,
		PollTimeout:   cfg.Telegram.PollTimeout,
	})
}

func startBot(lc fx.Lifecycle, b *bot.Bot) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return b.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return b.Stop(ctx)
		},
	})
}
