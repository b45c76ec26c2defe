package telegram

import (
	"strings"
	"time"

	"telegram-relay/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ConvertUpdate converts a Bot API update to a domain update.
// Only the message payload is decoded; other kinds carry just their kind.
func ConvertUpdate(update tgbotapi.Update) domain.Update {
	result := domain.Update{
		ID:         int64(update.UpdateID),
		Kind:       domain.UpdateKindOther,
		ReceivedAt: time.Now(),
	}

	switch {
	case update.Message != nil:
		result.Kind = domain.UpdateKindMessage
		result.Message = convertMessage(update.Message)
	case update.EditedMessage != nil:
		result.Kind = domain.UpdateKindEditedMessage
		result.Message = convertMessage(update.EditedMessage)
	case update.ChannelPost != nil:
		result.Kind = domain.UpdateKindChannelPost
		result.Message = convertMessage(update.ChannelPost)
	case update.CallbackQuery != nil:
		result.Kind = domain.UpdateKindCallbackQuery
	}

	return result
}

// convertMessage - Converts message payload
func convertMessage(msg *tgbotapi.Message) *domain.Message {
	result := &domain.Message{
		ID:   msg.MessageID,
		Text: msg.Text,
	}
	if msg.Date > 0 {
		result.Date = msg.Time()
	}
	if msg.Chat != nil {
		result.ChatID = msg.Chat.ID
		result.ChatType = domain.ChatType(msg.Chat.Type)
	}
	if msg.From != nil {
		result.From = &domain.User{
			ID:        msg.From.ID,
			IsBot:     msg.From.IsBot,
			FirstName: msg.From.FirstName,
			UserName:  msg.From.UserName,
		}
	}
	if msg.IsCommand() {
		result.Command = msg.Command()
		if _, target, ok := strings.Cut(msg.CommandWithAt(), "@"); ok {
			result.CommandTarget = target
		}
	}
	return result
}
