package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJournalJanitor_PruneOnceUsesTTL(t *testing.T) {
	journal := &MockUpdateJournal{}
	janitor := NewJournalJanitor(journal, time.Hour, time.Minute)
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	janitor.now = func() time.Time { return now }

	janitor.PruneOnce(context.Background())

	if len(journal.PruneArgs) != 1 {
		t.Fatalf("Expected 1 prune call, got %d", len(journal.PruneArgs))
	}
	if want := now.Add(-time.Hour); !journal.PruneArgs[0].Equal(want) {
		t.Errorf("Expected cutoff %v, got %v", want, journal.PruneArgs[0])
	}
}

func TestJournalJanitor_PruneErrorIsNotFatal(t *testing.T) {
	journal := &MockUpdateJournal{
		PruneFunc: func(ctx context.Context, before time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	janitor := NewJournalJanitor(journal, time.Hour, time.Minute)
	janitor.PruneOnce(context.Background())
}

func TestJournalJanitor_RunStopsOnCancel(t *testing.T) {
	journal := &MockUpdateJournal{}
	janitor := NewJournalJanitor(journal, time.Hour, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		janitor.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected Run to return after cancel")
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()
	if len(journal.PruneArgs) == 0 {
		t.Error("Expected at least one prune while running")
	}
}
