package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/fdlbot/fdl/cmd/fdl/modules"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the link server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.Supply(modules.ConfigPath(*configPath)),
				modules.InfraModule,
				modules.DomainModule,
				modules.BotModule,
				modules.ReaperModule,
				modules.ServerModule,
				modules.FxLogger,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
