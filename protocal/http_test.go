package protocal

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"telegram-relay/configs"
	httpAdapter "telegram-relay/internal/adapters/input/http"
	"telegram-relay/internal/adapters/output/memory"
	"telegram-relay/internal/application"
	"telegram-relay/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type recordingService struct {
	mu      sync.Mutex
	handled []int64
	done    chan struct{}
}

func (r *recordingService) HandleUpdate(ctx context.Context, update domain.Update) error {
	r.mu.Lock()
	r.handled = append(r.handled, update.ID)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func TestNewApp_Routes(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 1)}
	dispatcher := application.NewDispatcher(svc, 10, 1)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop(context.Background())

	journal := memory.NewMemoryUpdateJournal(time.Hour)
	app := newApp(
		httpAdapter.New(nil, journal, dispatcher, configs.ModeWebhook),
		httpAdapter.NewWebhookHandler(dispatcher, "s3cret_token"),
		false,
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "OK" {
		t.Errorf("Expected 200 OK, got %d %q", resp.StatusCode, body)
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected health 200, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/webhook/s3cret_token",
		strings.NewReader(`{"update_id":77,"message":{"message_id":1,"date":1,"chat":{"id":5,"type":"private"},"text":"hi"}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(httpAdapter.SecretTokenHeader, "s3cret_token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("POST webhook failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected webhook 200, got %d", resp.StatusCode)
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Update was not handled")
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.handled) != 1 || svc.handled[0] != 77 {
		t.Errorf("Expected update 77 to be handled, got %v", svc.handled)
	}
}

func TestNewApp_UnknownWebhookPath(t *testing.T) {
	dispatcher := application.NewDispatcher(&recordingService{done: make(chan struct{}, 1)}, 1, 1)
	app := newApp(
		httpAdapter.New(nil, nil, dispatcher, configs.ModeWebhook),
		httpAdapter.NewWebhookHandler(dispatcher, "s3cret_token"),
		false,
	)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/webhook", nil))
	if err != nil {
		t.Fatalf("POST /webhook failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404 without secret segment, got %d", resp.StatusCode)
	}
}

func TestNewJournal_DefaultsToMemory(t *testing.T) {
	cfg := &configs.Config{}
	cfg.Journal.TTL = time.Hour

	journal, db, err := newJournal(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if db != nil {
		t.Error("Expected no database handle for the memory journal")
	}
	if _, ok := journal.(*memory.MemoryUpdateJournal); !ok {
		t.Errorf("Expected memory journal, got %T", journal)
	}
}

func TestSetupLogging(t *testing.T) {
	cfg := &configs.Config{}
	cfg.App.Debug = true
	cfg.App.Env = "production"
	setupLogging(cfg)
	defer setupLogging(&configs.Config{})

	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		t.Error("Expected debug level")
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter in production, got %T", logrus.StandardLogger().Formatter)
	}
}
