package application

import (
	"context"
	"fmt"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/input"
	"telegram-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure WebhookService implements the input port
var _ input.WebhookService = (*WebhookService)(nil)

// WebhookService struct - Application service for webhook registration
type WebhookService struct {
	client output.TelegramClient
	url    string
	secret string
}

// NewWebhookService func - Creates new webhook service for the given callback URL
func NewWebhookService(client output.TelegramClient, url, secret string) *WebhookService {
	return &WebhookService{
		client: client,
		url:    url,
		secret: secret,
	}
}

// Register func - Use case: Reset the webhook then point it at this instance.
// Runs on every start so a redeploy with a new APP_URL takes effect.
func (s *WebhookService) Register(ctx context.Context) error {
	if err := s.client.DeleteWebhook(ctx, true); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	err := s.client.SetWebhook(ctx, domain.WebhookRegistration{
		URL:         s.url,
		SecretToken: s.secret,
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	logrus.Infoln("Webhook set to:", domain.MaskWebhookURL(s.url))
	return nil
}

// Unregister func - Use case: Remove the webhook before long polling
func (s *WebhookService) Unregister(ctx context.Context, dropPendingUpdates bool) error {
	if err := s.client.DeleteWebhook(ctx, dropPendingUpdates); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	logrus.Info("Webhook removed")
	return nil
}

// Status func - Use case: Compare the webhook on file with the expected one
func (s *WebhookService) Status(ctx context.Context) (*domain.WebhookStatus, error) {
	info, err := s.client.GetWebhookInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook info: %w", err)
	}

	status := &domain.WebhookStatus{
		URL:                domain.MaskWebhookURL(info.URL),
		Registered:         info.URL != "" && info.URL == s.url,
		PendingUpdateCount: info.PendingUpdateCount,
		LastErrorMessage:   info.LastErrorMessage,
	}
	if !info.LastErrorDate.IsZero() {
		t := info.LastErrorDate
		status.LastErrorDate = &t
	}
	return status, nil
}
