package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/input"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Dispatcher implements UpdateDispatcher interface
var _ input.UpdateDispatcher = (*Dispatcher)(nil)

// Dispatcher defaults
const (
	defaultQueueSize     = 100
	defaultWorkers       = 1
	defaultHandleTimeout = 30 * time.Second
)

// Dispatcher struct - Bounded update queue drained by a fixed set of workers.
// With one worker updates are handled in arrival order.
type Dispatcher struct {
	service input.UpdateService
	queue   chan domain.Update
	workers int
	timeout time.Duration

	// stopping is closed first on Stop so a blocked Submit gives up its read lock
	stopping chan struct{}
	stopOnce sync.Once

	mu      sync.RWMutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewDispatcher func - Creates new dispatcher
func NewDispatcher(service input.UpdateService, queueSize, workers int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Dispatcher{
		service:  service,
		queue:    make(chan domain.Update, queueSize),
		workers:  workers,
		timeout:  defaultHandleTimeout,
		stopping: make(chan struct{}),
	}
}

// Start launches the workers. Calling Start more than once has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
	logrus.Infof("Update dispatcher started: workers=%d, queue=%d", d.workers, cap(d.queue))
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	for update := range d.queue {
		d.handle(ctx, update)
	}
	logrus.Debugf("Dispatcher worker %d stopped", id)
}

func (d *Dispatcher) handle(ctx context.Context, update domain.Update) {
	// processing outlives the HTTP request; only the dispatcher's own ctx applies
	hctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Panic while handling update %d: %v", update.ID, r)
		}
	}()

	if err := d.service.HandleUpdate(hctx, update); err != nil {
		logrus.Errorf("Failed to handle update: %v", err)
	}
}

// Enqueue func - Queues an update without blocking
func (d *Dispatcher) Enqueue(update domain.Update) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return domain.ErrDispatcherStopped
	}

	select {
	case d.queue <- update:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

// Submit func - Queues an update, waiting for room until ctx is done
func (d *Dispatcher) Submit(ctx context.Context, update domain.Update) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return domain.ErrDispatcherStopped
	}

	select {
	case d.queue <- update:
		return nil
	case <-d.stopping:
		return domain.ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of queued updates
func (d *Dispatcher) Len() int {
	return len(d.queue)
}

// Stop closes the queue and waits until the workers have drained it or ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() { close(d.stopping) })

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("Update dispatcher drained")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher drain: %w", ctx.Err())
	}
}
