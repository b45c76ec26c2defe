package main

import (
	"fmt"

	"telegram-relay/configs"
	protocol "telegram-relay/protocal"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Register the webhook and serve Telegram updates over HTTP",
	Long: `Deletes any previous webhook, registers APP_URL/webhook/<WEBHOOK_SECRET>
and listens on PORT until SIGINT or SIGTERM.

The webhook is left registered on shutdown so the next update wakes the instance.

Example:
  BOT_TOKEN=... APP_URL=https://my-bot.onrender.com relay serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("")
		if err != nil {
			return err
		}
		if cfg.Bot.Mode == configs.ModePolling {
			return protocol.ServePolling(cfg)
		}
		if err := protocol.ServeHTTP(cfg); err != nil {
			return fmt.Errorf("webhook server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
