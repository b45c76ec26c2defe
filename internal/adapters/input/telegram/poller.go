package telegram

import (
	"context"
	"errors"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/input"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// UpdatesSource is the part of *tgbotapi.BotAPI the poller needs
type UpdatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller struct - Primary/Driving adapter fetching updates with getUpdates.
// Used for local development where no public URL exists.
type Poller struct {
	source     UpdatesSource
	dispatcher input.UpdateDispatcher
	timeout    int
}

// NewPoller func - Creates new long-polling adapter
func NewPoller(source UpdatesSource, dispatcher input.UpdateDispatcher, timeout int) *Poller {
	return &Poller{
		source:     source,
		dispatcher: dispatcher,
		timeout:    timeout,
	}
}

// Run polls until ctx is cancelled or the update channel closes
func (p *Poller) Run(ctx context.Context) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = p.timeout

	logrus.Infof("Running locally with polling (timeout %ds)...", p.timeout)
	updates := p.source.GetUpdatesChan(config)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Stopping long polling...")
			p.source.StopReceivingUpdates()
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			err := p.dispatcher.Submit(ctx, ConvertUpdate(update))
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrDispatcherStopped):
				p.source.StopReceivingUpdates()
				return err
			case ctx.Err() != nil:
				p.source.StopReceivingUpdates()
				return ctx.Err()
			default:
				logrus.Errorf("Failed to queue update %d: %v", update.UpdateID, err)
			}
		}
	}
}
