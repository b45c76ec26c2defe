package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"

	telegramAdapter "telegram-relay/internal/adapters/input/telegram"
	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/input"
	"telegram-relay/pkg/validator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// WebhookHandler struct - Primary/Driving adapter for Telegram webhook calls
type WebhookHandler struct {
	dispatcher input.UpdateDispatcher
	secret     []byte
	validator  validator.Validator
}

// NewWebhookHandler func - Creates new Telegram webhook handler
func NewWebhookHandler(dispatcher input.UpdateDispatcher, secret string) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		secret:     []byte(secret),
		validator:  validator.New(),
	}
}

// HandleWebhook func - Accepts one update and queues it for processing
// @Summary Telegram Webhook
// @Description Receives updates pushed by the Telegram Bot API. The update is queued and answered right away.
// @Tags Telegram
// @Accept application/json
// @Produce json
// @Param secret path string true "webhook secret"
// @Param X-Telegram-Bot-Api-Secret-Token header string true "secret token given to setWebhook"
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 403 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /webhook/{secret} [post]
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var params WebhookParams
	if err := c.ParamsParser(&params); err != nil || h.validator.ValidateStruct(params) != nil || !h.matches(params.Secret) {
		logrus.Warnf("Webhook call on unknown path from %s", c.IP())
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	}

	if !h.matches(c.Get(SecretTokenHeader)) {
		logrus.Warnf("%v from %s", domain.ErrInvalidSecret, c.IP())
		return c.Status(fiber.StatusForbidden).JSON(ResponseBody{Status: Forbidden})
	}

	if !c.Is("json") {
		logrus.Warnf("%v: %q", domain.ErrUnsupportedContentType, c.Get(fiber.HeaderContentType))
		return c.Status(fiber.StatusForbidden).JSON(ResponseBody{Status: Forbidden})
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		logrus.Errorf("Failed to decode update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if update.UpdateID <= 0 {
		logrus.Warnf("Rejected update without update_id from %s", c.IP())
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	err := h.dispatcher.Enqueue(telegramAdapter.ConvertUpdate(update))
	switch {
	case err == nil:
		logrus.Debugf("Queued update %d", update.UpdateID)
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
	case errors.Is(err, domain.ErrQueueFull), errors.Is(err, domain.ErrDispatcherStopped):
		logrus.Warnf("Rejected update %d: %v", update.UpdateID, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable.withMessage(err.Error())})
	default:
		logrus.Errorf("Failed to queue update %d: %v", update.UpdateID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
}

func (h *WebhookHandler) matches(got string) bool {
	return subtle.ConstantTimeCompare([]byte(got), h.secret) == 1
}
