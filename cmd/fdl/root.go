package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fdlbot/fdl/internal/boot"
	"github.com/fdlbot/fdl/internal/config"
	"github.com/fdlbot/fdl/internal/logger"
	"github.com/fdlbot/fdl/internal/version"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "fdl",
		Short:         "FDL Bot turns Telegram media into expiring stream and download links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = version.GetInfo()
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to config.toml")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newArchiveCmd(&configPath),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "FDL Bot %s\n", version.GetInfo())
			return err
		},
	}
}

// loadRuntime loads the config file, initializes logging and validates runtime settings.
func loadRuntime(configPath string) (config.Config, *boot.RuntimeConfig, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	rc, err := boot.ProvideRuntimeConfig(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, rc, logger.L, nil
}
