package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"telegram-relay/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret_token"

const textUpdate = `{"update_id":501,"message":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hello"}}`

type stubDispatcher struct {
	mu      sync.Mutex
	queued  []domain.Update
	err     error
	pending int
}

func (s *stubDispatcher) Enqueue(update domain.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.queued = append(s.queued, update)
	return nil
}

func (s *stubDispatcher) Submit(ctx context.Context, update domain.Update) error {
	return s.Enqueue(update)
}

func (s *stubDispatcher) Len() int {
	return s.pending
}

func newWebhookApp(dispatcher *stubDispatcher) *fiber.App {
	app := fiber.New()
	hdl := NewWebhookHandler(dispatcher, testSecret)
	app.Post("/webhook/:secret", hdl.HandleWebhook)
	return app
}

func doWebhook(t *testing.T, app *fiber.App, path, token, contentType, body string) (int, ResponseBody) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(SecretTokenHeader, token)
	}
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out ResponseBody
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHandleWebhook_QueuesUpdate(t *testing.T) {
	dispatcher := &stubDispatcher{}
	app := newWebhookApp(dispatcher)

	code, body := doWebhook(t, app, "/webhook/"+testSecret, testSecret, fiber.MIMEApplicationJSON, textUpdate)

	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, fiber.StatusOK, body.Status.Code)
	require.Len(t, dispatcher.queued, 1)
	assert.Equal(t, int64(501), dispatcher.queued[0].ID)
	require.NotNil(t, dispatcher.queued[0].Message)
	assert.Equal(t, "hello", dispatcher.queued[0].Message.Text)
}

func TestHandleWebhook_AcceptsCharsetSuffix(t *testing.T) {
	dispatcher := &stubDispatcher{}
	app := newWebhookApp(dispatcher)

	code, _ := doWebhook(t, app, "/webhook/"+testSecret, testSecret, "application/json; charset=utf-8", textUpdate)

	assert.Equal(t, fiber.StatusOK, code)
	assert.Len(t, dispatcher.queued, 1)
}

func TestHandleWebhook_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		token       string
		contentType string
		body        string
		want        int
	}{
		{"wrong path secret", "/webhook/other_secret", testSecret, fiber.MIMEApplicationJSON, textUpdate, fiber.StatusNotFound},
		{"malformed path secret", "/webhook/bad!secret", testSecret, fiber.MIMEApplicationJSON, textUpdate, fiber.StatusNotFound},
		{"missing header", "/webhook/" + testSecret, "", fiber.MIMEApplicationJSON, textUpdate, fiber.StatusForbidden},
		{"wrong header", "/webhook/" + testSecret, "nope", fiber.MIMEApplicationJSON, textUpdate, fiber.StatusForbidden},
		{"form body", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationForm, "a=b", fiber.StatusForbidden},
		{"no content type", "/webhook/" + testSecret, testSecret, "", textUpdate, fiber.StatusForbidden},
		{"broken json", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationJSON, `{"update_id":`, fiber.StatusBadRequest},
		{"empty body", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationJSON, "", fiber.StatusBadRequest},
		{"null body", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationJSON, "null", fiber.StatusBadRequest},
		{"empty object", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationJSON, "{}", fiber.StatusBadRequest},
		{"negative update id", "/webhook/" + testSecret, testSecret, fiber.MIMEApplicationJSON, `{"update_id":-3}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &stubDispatcher{}
			app := newWebhookApp(dispatcher)

			code, body := doWebhook(t, app, tt.path, tt.token, tt.contentType, tt.body)

			assert.Equal(t, tt.want, code)
			assert.Equal(t, tt.want, body.Status.Code)
			assert.Empty(t, dispatcher.queued)
		})
	}
}

func TestHandleWebhook_BusyAnswers503(t *testing.T) {
	for _, err := range []error{domain.ErrQueueFull, domain.ErrDispatcherStopped} {
		t.Run(err.Error(), func(t *testing.T) {
			app := newWebhookApp(&stubDispatcher{err: err})

			code, body := doWebhook(t, app, "/webhook/"+testSecret, testSecret, fiber.MIMEApplicationJSON, textUpdate)

			assert.Equal(t, fiber.StatusServiceUnavailable, code)
			assert.Equal(t, []string{err.Error()}, body.Status.Message)
		})
	}
}
