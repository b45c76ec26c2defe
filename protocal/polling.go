package protocal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"telegram-relay/configs"
	telegramInput "telegram-relay/internal/adapters/input/telegram"
	"telegram-relay/internal/application"

	"github.com/sirupsen/logrus"
)

// ServePolling func - Runs the relay with getUpdates, for local development
func ServePolling(cfg *configs.Config) error {
	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}

	// getUpdates is refused while a webhook is set
	webhookSrv := application.NewWebhookService(rt.client, cfg.WebhookURL(), cfg.Webhook.Secret)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	err = webhookSrv.Unregister(ctx, false)
	cancel()
	if err != nil {
		rt.stop()
		return err
	}

	rt.start()
	defer rt.stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := telegramInput.NewPoller(rt.client.API(), rt.dispatcher, cfg.Bot.PollTimeout)
	err = poller.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logrus.Info("Polling stopped")
		return nil
	}
	return err
}
