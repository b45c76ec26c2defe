package memory

import (
	"context"
	"sync"
	"time"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/output"
)

// Compile-time check to ensure MemoryUpdateJournal implements UpdateJournal interface
var _ output.UpdateJournal = (*MemoryUpdateJournal)(nil)

// MemoryUpdateJournal struct - Output adapter for in-memory update deduplication.
// Uses sync.Map for concurrent access; entries older than ttl are treated as unseen
// and removed lazily or by Prune. The journal is lost when the instance sleeps.
type MemoryUpdateJournal struct {
	entries sync.Map // update ID -> time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryUpdateJournal creates a new in-memory journal.
// ttl: how long an update ID is remembered
func NewMemoryUpdateJournal(ttl time.Duration) *MemoryUpdateJournal {
	return &MemoryUpdateJournal{
		ttl: ttl,
		now: time.Now,
	}
}

// MarkProcessed records the update ID and reports whether it was new.
func (m *MemoryUpdateJournal) MarkProcessed(ctx context.Context, update domain.Update) (bool, error) {
	now := m.now()
	for {
		value, loaded := m.entries.LoadOrStore(update.ID, now)
		if !loaded {
			return true, nil
		}

		seenAt, ok := value.(time.Time)
		if ok && now.Sub(seenAt) <= m.ttl {
			return false, nil
		}

		// expired or malformed: replace it, unless another goroutine got there first
		if m.entries.CompareAndSwap(update.ID, value, now) {
			return true, nil
		}
	}
}

// Prune removes entries recorded before the cutoff.
func (m *MemoryUpdateJournal) Prune(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	m.entries.Range(func(key, value any) bool {
		seenAt, ok := value.(time.Time)
		if !ok || seenAt.Before(before) {
			m.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed, nil
}

// Ping always succeeds for the in-memory journal.
func (m *MemoryUpdateJournal) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of remembered update IDs.
func (m *MemoryUpdateJournal) Len() int {
	n := 0
	m.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
