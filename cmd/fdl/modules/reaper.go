package modules

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/fdlbot/fdl/internal/config"
	"github.com/fdlbot/fdl/internal/links"
	"github.com/fdlbot/fdl/internal/reaper"
)

var ReaperModule = fx.Module(
	"reaper",
	fx.Invoke(startReaper),
)

// startReaper schedules the expired-record sweep when enabled in config.
func startReaper(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, store links.Store) error {
	if !cfg.Reaper.Enabled {
		return nil
	}
	svc, err := reaper.NewService(log, store, cfg.Reaper.Schedule)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start()
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop(ctx)
		},
	})
	return nil
}
