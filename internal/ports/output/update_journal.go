package output

import (
	"context"
	"time"

	"telegram-relay/internal/domain"
)

// UpdateJournal interface - Output port
// Remembers which update IDs were already accepted so that Telegram
// redeliveries are processed once. Implementations must be safe for concurrent use.
type UpdateJournal interface {
	// MarkProcessed records the update and reports whether it was seen for the first time.
	// Entries older than the journal TTL count as unseen.
	MarkProcessed(ctx context.Context, update domain.Update) (bool, error)

	// Prune drops entries recorded before the given time and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
