package modules

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/fdlbot/fdl/internal/archive"
	"github.com/fdlbot/fdl/internal/boot"
	"github.com/fdlbot/fdl/internal/handlers"
	"github.com/fdlbot/fdl/internal/links"
	"github.com/fdlbot/fdl/internal/sessions"
)

var DomainModule = fx.Module(
	"domain",
	fx.Provide(
		links.NewStore,
		archive.NewCatalog,
		sessions.NewStore,
		provideRelay,
		provideIssuer,
		links.NewVerifier,

		provideArchiveFetcher,
		provideLinkVerifier,
		provideRecordCounter,
	),
)

// ---------------------------------------------------------------------------
// domain service providers (interface adapters)
// ---------------------------------------------------------------------------

func provideRelay(log *slog.Logger, api *tgbotapi.BotAPI, catalog archive.Catalog, limiter *rate.Limiter, rc *boot.RuntimeConfig) *archive.TelegramRelay {
	return archive.NewTelegramRelay(log, api, catalog, limiter, archive.RelayConfig{
		ArchiveChatID: rc.ArchiveChatID,
		BotToken:      rc.BotToken,
		FileEndpoint:  archive.FileEndpointFor(rc.APIEndpoint),
		FetchTimeout:  rc.FetchTimeout,
		IdleTimeout:   rc.IdleTimeout,
	})
}

func provideIssuer(log *slog.Logger, relay *archive.TelegramRelay, store links.Store, rc *boot.RuntimeConfig) *links.Issuer {
	return links.NewIssuer(log, relay, store, rc.BaseURL)
}

func provideArchiveFetcher(relay *archive.TelegramRelay) handlers.ArchiveFetcher {
	return relay
}

func provideLinkVerifier(verifier *links.Verifier) handlers.LinkVerifier {
	return verifier
}

func provideRecordCounter(store links.Store) handlers.RecordCounter {
	return store
}
