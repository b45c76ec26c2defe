package application

import (
	"context"
	"time"

	"telegram-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// JournalJanitor struct - Periodically drops journal entries older than the TTL
type JournalJanitor struct {
	journal  output.UpdateJournal
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewJournalJanitor func - Creates new journal janitor
func NewJournalJanitor(journal output.UpdateJournal, ttl, interval time.Duration) *JournalJanitor {
	return &JournalJanitor{
		journal:  journal,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

// Run prunes on every tick until ctx is cancelled
func (j *JournalJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.PruneOnce(ctx)
		}
	}
}

// PruneOnce drops expired entries once
func (j *JournalJanitor) PruneOnce(ctx context.Context) {
	removed, err := j.journal.Prune(ctx, j.now().Add(-j.ttl))
	if err != nil {
		logrus.Warnf("Failed to prune update journal: %v", err)
		return
	}
	if removed > 0 {
		logrus.Debugf("Pruned %d journal entries", removed)
	}
}
