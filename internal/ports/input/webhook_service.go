package input

import (
	"context"

	"telegram-relay/internal/domain"
)

// WebhookService interface - Input port (use case)
// Defines how the relay registers itself with Telegram
type WebhookService interface {
	// Register drops any previous webhook and points Telegram at this instance
	Register(ctx context.Context) error

	// Unregister removes the webhook, used before switching to long polling
	Unregister(ctx context.Context, dropPendingUpdates bool) error

	// Status reports the webhook Telegram currently has on file
	Status(ctx context.Context) (*domain.WebhookStatus, error)
}
