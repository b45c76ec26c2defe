package input

import (
	"context"

	"telegram-relay/internal/domain"
)

// UpdateService interface - Input port (use case)
// Defines what the bot does with a single Telegram update
type UpdateService interface {
	// HandleUpdate routes an update to the command or echo logic
	HandleUpdate(ctx context.Context, update domain.Update) error
}

// UpdateDispatcher interface - Input port
// Decouples receipt of an update from its processing
type UpdateDispatcher interface {
	// Enqueue hands the update over without blocking.
	// Returns domain.ErrQueueFull or domain.ErrDispatcherStopped when it cannot.
	Enqueue(update domain.Update) error

	// Submit blocks until the update is queued or ctx is done.
	Submit(ctx context.Context, update domain.Update) error
}
