package main

import (
	"telegram-relay/configs"
	protocol "telegram-relay/protocal"

	"github.com/spf13/cobra"
)

// pollCmd represents the poll command
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Fetch updates with long polling (local development)",
	Long: `Removes the webhook and fetches updates with getUpdates. APP_URL is not needed.

Example:
  BOT_TOKEN=... relay poll`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configs.ModePolling)
		if err != nil {
			return err
		}
		return protocol.ServePolling(cfg)
	},
}

func init() {
	rootCmd.AddCommand(pollCmd)
}
