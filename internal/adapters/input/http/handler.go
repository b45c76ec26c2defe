package http

import (
	"context"
	"time"

	"telegram-relay/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	serviceName   = "telegram-relay"
	healthTimeout = 3 * time.Second
)

// Pinger is anything the health probe can check, typically the update journal
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueLength reports how many updates are waiting
type QueueLength interface {
	Len() int
}

// HTTPHandler struct - Primary/Driving adapter for the service endpoints
type HTTPHandler struct {
	webhook   input.WebhookService
	journal   Pinger
	queue     QueueLength
	mode      string
	startedAt time.Time
}

// New func - Creates new HTTP handler. webhook may be nil in polling mode.
func New(webhook input.WebhookService, journal Pinger, queue QueueLength, mode string) *HTTPHandler {
	return &HTTPHandler{
		webhook:   webhook,
		journal:   journal,
		queue:     queue,
		mode:      mode,
		startedAt: time.Now(),
	}
}

// Root func - Plain liveness answer, also what the platform hits to wake the instance
func (hdl *HTTPHandler) Root(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// HealthCheck func
// @Summary Health check
// @Description Reports mode, uptime and queue depth; fails when the update journal is unreachable
// @Tags Service
// @Produce json
// @Success 200 {object} ResponseBody{data=HealthResponse}
// @Failure 500 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.journal != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := hdl.journal.Ping(ctx); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
	}

	health := HealthResponse{
		Service: serviceName,
		Mode:    hdl.mode,
		Uptime:  time.Since(hdl.startedAt).Round(time.Second).String(),
	}
	if hdl.queue != nil {
		health.Queued = hdl.queue.Len()
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: health})
}

// WebhookStatus func
// @Summary Webhook status
// @Description Shows the webhook Telegram has on file, with the secret masked
// @Tags Telegram
// @Produce json
// @Success 200 {object} ResponseBody{data=WebhookStatusResponse}
// @Failure 404 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/webhook [get]
func (hdl *HTTPHandler) WebhookStatus(c *fiber.Ctx) error {
	if hdl.webhook == nil {
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	}

	status, err := hdl.webhook.Status(c.UserContext())
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadGateway).JSON(ResponseBody{Status: BadGateway})
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status: Success,
		Data: WebhookStatusResponse{
			URL:                status.URL,
			Registered:         status.Registered,
			PendingUpdateCount: status.PendingUpdateCount,
			LastErrorMessage:   status.LastErrorMessage,
			LastErrorDate:      status.LastErrorDate,
		},
	})
}
