package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fdlbot/fdl/internal/archive"
	"github.com/fdlbot/fdl/internal/bot"
	"github.com/fdlbot/fdl/internal/db"
)

func newArchiveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage archived media",
	}
	cmd.AddCommand(newArchiveDeleteCmd(configPath))
	return cmd
}

func newArchiveDeleteCmd(configPath *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "delete <media_id>",
		Short: "Delete an archived message and its catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || mediaID <= 0 {
				return fmt.Errorf("invalid media id %q", args[0])
			}
			cfg, rc, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			handle, err := db.Open(ctx, rc.DatabaseURL, cfg.Database.MaxConns)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer handle.Close()

			catalog, err := archive.NewCatalog(handle)
			if err != nil {
				return err
			}
			api, err := bot.NewAPI(log, rc.BotToken, rc.APIEndpoint, bot.RequestTimeout(cfg.Telegram.PollTimeout, rc.FetchTimeout))
			if err != nil {
				return err
			}
			relay := archive.NewTelegramRelay(log, api, catalog, bot.NewLimiter(cfg.Telegram.SendRate), archive.RelayConfig{
				ArchiveChatID: rc.ArchiveChatID,
				BotToken:      rc.BotToken,
				FileEndpoint:  archive.FileEndpointFor(rc.APIEndpoint),
			})
			if err := relay.Delete(ctx, mediaID); err != nil {
				return fmt.Errorf("delete media %d: %w", mediaID, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "media %d deleted\n", mediaID)
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	return cmd
}
