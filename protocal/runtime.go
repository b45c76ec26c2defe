package protocal

import (
	"context"
	"fmt"
	"time"

	"telegram-relay/configs"
	"telegram-relay/internal/adapters/output/memory"
	"telegram-relay/internal/adapters/output/postgres"
	telegramClient "telegram-relay/internal/adapters/output/telegram"
	"telegram-relay/internal/application"
	"telegram-relay/internal/ports/output"
	"telegram-relay/pkg/database_driver/gorm"

	"github.com/sirupsen/logrus"
	gormDB "gorm.io/gorm"
)

const (
	startupTimeout = 15 * time.Second
	drainTimeout   = 10 * time.Second
)

// runtime holds the pieces shared by the webhook and polling entry points
type runtime struct {
	cfg        *configs.Config
	client     *telegramClient.TelegramClientAdapter
	journal    output.UpdateJournal
	db         *gormDB.DB
	dispatcher *application.Dispatcher
	janitor    *application.JournalJanitor

	cancel context.CancelFunc
}

func setupLogging(cfg *configs.Config) {
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if cfg.App.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// newJournal picks the postgres journal when a host is configured, else the in-memory one
func newJournal(cfg *configs.Config) (output.UpdateJournal, *gormDB.DB, error) {
	if !cfg.UsePostgres() {
		logrus.Info("Using in-memory update journal")
		return memory.NewMemoryUpdateJournal(cfg.Journal.TTL), nil, nil
	}

	dbConGorm, err := gorm.ConnectToPostgreSQL(
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.DbName,
		cfg.Postgres.SSLMode,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect journal database: %w", err)
	}

	journal, err := postgres.NewUpdateJournal(dbConGorm.Postgres, cfg.Journal.TTL)
	if err != nil {
		gorm.DisconnectPostgres(dbConGorm.Postgres)
		return nil, nil, err
	}
	logrus.Info("Using postgres update journal")
	return journal, dbConGorm.Postgres, nil
}

// newRuntime wires output adapters, the update service and the dispatcher
func newRuntime(cfg *configs.Config) (*runtime, error) {
	setupLogging(cfg)
	logrus.Info(cfg.String())

	// Output adapter (Telegram client)
	client, err := telegramClient.NewTelegramClientAdapter(cfg.Bot.Token, cfg.Bot.APIEndpoint, cfg.App.Debug)
	if err != nil {
		return nil, err
	}

	// Output adapter (journal)
	journal, db, err := newJournal(cfg)
	if err != nil {
		return nil, err
	}

	// Application service (use case) behind the queue
	srv := application.NewUpdateService(client, journal)

	return &runtime{
		cfg:        cfg,
		client:     client,
		journal:    journal,
		db:         db,
		dispatcher: application.NewDispatcher(srv, cfg.Queue.Size, cfg.Queue.Workers),
		janitor:    application.NewJournalJanitor(journal, cfg.Journal.TTL, cfg.Journal.PruneInterval),
	}, nil
}

// start launches the dispatcher workers and the journal janitor
func (r *runtime) start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.dispatcher.Start(ctx)
	go r.janitor.Run(ctx)
}

// stop drains queued updates, then releases the journal
func (r *runtime) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := r.dispatcher.Stop(ctx); err != nil {
		logrus.Warnf("Dropped %d queued updates: %v", r.dispatcher.Len(), err)
	}

	if r.cancel != nil {
		r.cancel()
	}
	if r.db != nil {
		gorm.DisconnectPostgres(r.db)
	}
}
