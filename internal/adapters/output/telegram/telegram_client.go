package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/output"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TelegramClientAdapter implements TelegramClient interface
var _ output.TelegramClient = (*TelegramClientAdapter)(nil)

const requestTimeout = 30 * time.Second

// TelegramClientAdapter struct - Output adapter for the Telegram Bot API
type TelegramClientAdapter struct {
	api *tgbotapi.BotAPI
}

// NewTelegramClientAdapter func - Creates new Telegram client adapter.
// The token is checked against getMe before the adapter is returned.
func NewTelegramClientAdapter(token, apiEndpoint string, debug bool) (*TelegramClientAdapter, error) {
	return NewTelegramClientAdapterWithClient(token, apiEndpoint, &http.Client{Timeout: requestTimeout}, debug)
}

// NewTelegramClientAdapterWithClient func - Creates new Telegram client adapter with a custom HTTP client
func NewTelegramClientAdapterWithClient(token, apiEndpoint string, client tgbotapi.HTTPClient, debug bool) (*TelegramClientAdapter, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	if err := tgbotapi.SetLogger(logrus.StandardLogger()); err != nil {
		logrus.Warnf("Failed to route bot API logs: %v", err)
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API client: %w", err)
	}
	api.Debug = debug

	logrus.Infof("Authorized on account %s", api.Self.UserName)

	return &TelegramClientAdapter{
		api: api,
	}, nil
}

// API exposes the underlying bot API for long polling
func (a *TelegramClientAdapter) API() *tgbotapi.BotAPI {
	return a.api
}

// Me - Returns the bot account
func (a *TelegramClientAdapter) Me() domain.User {
	return domain.User{
		ID:        a.api.Self.ID,
		IsBot:     a.api.Self.IsBot,
		FirstName: a.api.Self.FirstName,
		UserName:  a.api.Self.UserName,
	}
}

// SendMessage - Sends a text message to a chat
func (a *TelegramClientAdapter) SendMessage(ctx context.Context, request domain.SendMessageRequest) (*domain.SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if request.Text == "" {
		return nil, domain.ErrEmptyMessage
	}

	msg := tgbotapi.NewMessage(request.ChatID, request.Text)
	if request.ReplyToMessageID != 0 {
		msg.ReplyToMessageID = request.ReplyToMessageID
	}

	sent, err := a.api.Send(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to send message to chat %d: %w", request.ChatID, err)
	}

	logrus.Debugf("Sent message %d to chat %d", sent.MessageID, request.ChatID)

	return &domain.SentMessage{
		MessageID: sent.MessageID,
		ChatID:    request.ChatID,
	}, nil
}

// SetWebhook - Registers the webhook URL together with the secret token.
// The bundled WebhookConfig has no secret_token field, so the call is built by hand.
func (a *TelegramClientAdapter) SetWebhook(ctx context.Context, registration domain.WebhookRegistration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := tgbotapi.Params{
		"url": registration.URL,
	}
	if registration.SecretToken != "" {
		params["secret_token"] = registration.SecretToken
	}

	resp, err := a.api.MakeRequest("setWebhook", params)
	if err != nil {
		return fmt.Errorf("setWebhook: %w", err)
	}
	logrus.Debugf("setWebhook: %s", resp.Description)
	return nil
}

// DeleteWebhook - Removes the webhook
func (a *TelegramClientAdapter) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := a.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: dropPendingUpdates}); err != nil {
		return fmt.Errorf("deleteWebhook: %w", err)
	}
	return nil
}

// GetWebhookInfo - Returns the webhook Telegram has on file
func (a *TelegramClientAdapter) GetWebhookInfo(ctx context.Context) (*domain.WebhookInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := a.api.GetWebhookInfo()
	if err != nil {
		return nil, fmt.Errorf("getWebhookInfo: %w", err)
	}

	result := &domain.WebhookInfo{
		URL:                info.URL,
		PendingUpdateCount: info.PendingUpdateCount,
		LastErrorMessage:   info.LastErrorMessage,
	}
	if info.LastErrorDate > 0 {
		result.LastErrorDate = time.Unix(int64(info.LastErrorDate), 0)
	}
	return result, nil
}
