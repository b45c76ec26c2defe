package application

import (
	"context"
	"fmt"
	"strings"

	"telegram-relay/internal/domain"
	"telegram-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Bot replies
const (
	StartReply = "Привет! Я проснулся и на связи 🤖"
	EchoPrefix = "Вы написали: "
	HelpReply  = "Команды:\n/start - проверить, что бот на связи\n/help - показать это сообщение\n\nЛюбой другой текст я повторю."
)

// UpdateService struct - Application service implementing the bot use cases
type UpdateService struct {
	client  output.TelegramClient
	journal output.UpdateJournal
}

// NewUpdateService func - Creates new update service
func NewUpdateService(client output.TelegramClient, journal output.UpdateJournal) *UpdateService {
	return &UpdateService{
		client:  client,
		journal: journal,
	}
}

// HandleUpdate func - Use case: Handle a single update delivered by Telegram
func (s *UpdateService) HandleUpdate(ctx context.Context, update domain.Update) error {
	first, err := s.journal.MarkProcessed(ctx, update)
	if err != nil {
		// a journal outage must not silence the bot
		logrus.Warnf("Update journal unavailable, processing update %d anyway: %v", update.ID, err)
	} else if !first {
		logrus.Infof("Skipping redelivered update %d", update.ID)
		return nil
	}

	logrus.Debugf("Received update: id=%d, kind=%s, chatID=%d", update.ID, update.Kind, update.ChatIDForLog())

	switch update.Kind {
	case domain.UpdateKindMessage:
		if err := s.handleMessage(ctx, update.Message); err != nil {
			return fmt.Errorf("update %d: %w", update.ID, err)
		}
	default:
		logrus.Debugf("Unhandled update kind: %s", update.Kind)
	}

	return nil
}

// handleMessage - Business logic for new messages
func (s *UpdateService) handleMessage(ctx context.Context, msg *domain.Message) error {
	if !msg.HasText() {
		return nil
	}

	var reply string
	if msg.IsCommand() {
		if me := s.client.Me(); !msg.IsAddressedTo(me.UserName) {
			logrus.Debugf("Ignoring /%s@%s meant for another bot in chat %d", msg.Command, msg.CommandTarget, msg.ChatID)
			return nil
		}
		reply = s.handleCommand(msg)
	} else {
		reply = EchoPrefix + msg.Text
	}

	if reply == "" {
		return nil
	}

	request := domain.SendMessageRequest{
		ChatID: msg.ChatID,
		Text:   reply,
	}
	// in groups the reply quotes the message it answers
	if msg.ChatType != domain.ChatTypePrivate {
		request.ReplyToMessageID = msg.ID
	}

	_, err := s.client.SendMessage(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// handleCommand - Business logic for command processing.
// Unknown commands get no reply.
func (s *UpdateService) handleCommand(msg *domain.Message) string {
	command := strings.ToLower(msg.Command)

	switch command {
	case "start":
		userID := int64(0)
		if msg.From != nil {
			userID = msg.From.ID
		}
		logrus.Infof("Start command: chatID=%d, userID=%d", msg.ChatID, userID)
		return StartReply

	case "help":
		return HelpReply

	default:
		logrus.Debugf("Ignoring unknown command /%s in chat %d", command, msg.ChatID)
		return ""
	}
}
