package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	dbembed "github.com/fdlbot/fdl/db"
	"github.com/fdlbot/fdl/internal/config"
	"github.com/fdlbot/fdl/internal/db"
	"github.com/fdlbot/fdl/internal/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|version|force N]",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"up", "down", "version", "force"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.Log.Level, cfg.Log.Format)
			if databaseURL == "" {
				databaseURL = cfg.Database.URL
			}
			log := logger.L.With(slog.String("component", "migrate"))
			return db.RunMigrate(log, databaseURL, dbembed.MigrationsFS, args[0], args[1:])
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "override the configured database url")
	return cmd
}
