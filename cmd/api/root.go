package main

import (
	"os"

	"telegram-relay/configs"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envName   string
	configDir string
)

// rootCmd runs the webhook server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Telegram bot webhook relay",
	Long: `Receives Telegram updates on /webhook/<secret> and answers /start and plain text.

Configuration is read from configs/config.yaml, an optional .env file and the
environment (BOT_TOKEN, APP_URL, WEBHOOK_SECRET, PORT).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configs.InitViper(configDir, envName)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "the environment to use (merges config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "directory holding config.yaml")
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorln(err)
		os.Exit(1)
	}
}

// loadConfig returns the validated config, forcing mode when it is set
func loadConfig(mode string) (*configs.Config, error) {
	cfg := configs.GetViper()
	if mode != "" {
		cfg.Bot.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
