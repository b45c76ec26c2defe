package output

import (
	"context"

	"telegram-relay/internal/domain"
)

// TelegramClient interface - Output port
// Defines what the application needs from the Telegram Bot API
type TelegramClient interface {
	// SendMessage sends a text message to a chat
	SendMessage(ctx context.Context, request domain.SendMessageRequest) (*domain.SentMessage, error)

	// SetWebhook registers the webhook URL and secret token
	SetWebhook(ctx context.Context, registration domain.WebhookRegistration) error

	// DeleteWebhook removes the webhook, optionally dropping queued updates
	DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error

	// GetWebhookInfo returns the webhook Telegram currently has on file
	GetWebhookInfo(ctx context.Context) (*domain.WebhookInfo, error)

	// Me returns the bot account the token belongs to
	Me() domain.User
}
