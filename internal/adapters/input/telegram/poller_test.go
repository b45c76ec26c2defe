package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"telegram-relay/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	updates chan tgbotapi.Update

	mu      sync.Mutex
	config  tgbotapi.UpdateConfig
	stopped bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{updates: make(chan tgbotapi.Update, 10)}
}

func (f *fakeSource) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	f.mu.Lock()
	f.config = config
	f.mu.Unlock()
	return f.updates
}

func (f *fakeSource) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeSource) wasStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeDispatcher struct {
	mu        sync.Mutex
	submitted []domain.Update
	err       error
}

func (f *fakeDispatcher) Enqueue(update domain.Update) error {
	return f.Submit(context.Background(), update)
}

func (f *fakeDispatcher) Submit(ctx context.Context, update domain.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, update)
	return nil
}

func (f *fakeDispatcher) ids() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.submitted))
	for _, u := range f.submitted {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestPoller_SubmitsUpdatesInOrder(t *testing.T) {
	source := newFakeSource()
	dispatcher := &fakeDispatcher{}
	poller := NewPoller(source, dispatcher, 25)

	for i := 1; i <= 3; i++ {
		source.updates <- tgbotapi.Update{UpdateID: i, Message: &tgbotapi.Message{MessageID: i, Text: "x", Chat: &tgbotapi.Chat{ID: 1}}}
	}
	close(source.updates)

	require.NoError(t, poller.Run(context.Background()))
	assert.Equal(t, []int64{1, 2, 3}, dispatcher.ids())
	assert.Equal(t, 25, source.config.Timeout)
	assert.Equal(t, 0, source.config.Offset)
}

func TestPoller_StopsOnCancel(t *testing.T) {
	source := newFakeSource()
	poller := NewPoller(source, &fakeDispatcher{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	assert.True(t, source.wasStopped())
}

func TestPoller_StopsWhenDispatcherStopped(t *testing.T) {
	source := newFakeSource()
	dispatcher := &fakeDispatcher{err: domain.ErrDispatcherStopped}
	poller := NewPoller(source, dispatcher, 1)

	source.updates <- tgbotapi.Update{UpdateID: 1}

	err := poller.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrDispatcherStopped)
	assert.True(t, source.wasStopped())
}

func TestPoller_KeepsGoingOnSubmitError(t *testing.T) {
	source := newFakeSource()
	dispatcher := &fakeDispatcher{err: errors.New("boom")}
	poller := NewPoller(source, dispatcher, 1)

	source.updates <- tgbotapi.Update{UpdateID: 1}
	source.updates <- tgbotapi.Update{UpdateID: 2}
	close(source.updates)

	assert.NoError(t, poller.Run(context.Background()))
	assert.False(t, source.wasStopped())
}
