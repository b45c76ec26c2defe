package domain

import (
	"strings"
	"time"
)

// UpdateKind represents which payload an incoming Telegram update carries
type UpdateKind string

const (
	// UpdateKindMessage - New incoming message
	UpdateKindMessage UpdateKind = "message"
	// UpdateKindEditedMessage - Edited message
	UpdateKindEditedMessage UpdateKind = "edited_message"
	// UpdateKindChannelPost - Channel post
	UpdateKindChannelPost UpdateKind = "channel_post"
	// UpdateKindCallbackQuery - Inline keyboard callback
	UpdateKindCallbackQuery UpdateKind = "callback_query"
	// UpdateKindOther - Anything the relay does not decode
	UpdateKindOther UpdateKind = "other"
)

// ChatType represents the type of chat a message was sent in
type ChatType string

const (
	// ChatTypePrivate - One-to-one chat with the bot
	ChatTypePrivate ChatType = "private"
	// ChatTypeGroup - Group chat
	ChatTypeGroup ChatType = "group"
	// ChatTypeSupergroup - Supergroup chat
	ChatTypeSupergroup ChatType = "supergroup"
	// ChatTypeChannel - Channel
	ChatTypeChannel ChatType = "channel"
)

// Update represents a Telegram update (domain entity)
type Update struct {
	ID         int64
	Kind       UpdateKind
	Message    *Message
	ReceivedAt time.Time
}

// Message represents a message sent to the bot
type Message struct {
	ID            int
	ChatID        int64
	ChatType      ChatType
	From          *User
	Text          string
	Command       string // without the leading slash and @botname suffix
	CommandTarget string // the @botname suffix, empty when the command is unaddressed
	Date          time.Time
}

// User represents the sender of a message
type User struct {
	ID        int64
	IsBot     bool
	FirstName string
	UserName  string
}

// IsCommand reports whether the message starts with a bot command entity
func (m *Message) IsCommand() bool {
	return m != nil && m.Command != ""
}

// IsAddressedTo reports whether a command is meant for the bot with the given username.
// Unaddressed commands are meant for every bot in the chat.
func (m *Message) IsAddressedTo(username string) bool {
	return m.CommandTarget == "" || strings.EqualFold(m.CommandTarget, username)
}

// HasText reports whether the message carries non-blank text
func (m *Message) HasText() bool {
	return m != nil && strings.TrimSpace(m.Text) != ""
}

// ChatIDForLog returns the chat id or 0 for updates without a message
func (u Update) ChatIDForLog() int64 {
	if u.Message == nil {
		return 0
	}
	return u.Message.ChatID
}

// WebhookPathPrefix is the route prefix under which the secret path segment lives
const WebhookPathPrefix = "/webhook/"

// BuildWebhookURL joins the public base URL and the secret path segment.
func BuildWebhookURL(appURL, secret string) string {
	return strings.TrimRight(appURL, "/") + WebhookPathPrefix + secret
}

// Mask hides all but the first few characters of a credential.
func Mask(s string) string {
	if len(s) <= 6 {
		return "***"
	}
	return s[:3] + "***"
}

// MaskWebhookURL hides the secret segment of a webhook URL.
func MaskWebhookURL(url string) string {
	i := strings.LastIndex(url, WebhookPathPrefix)
	if i < 0 {
		return url
	}
	return url[:i+len(WebhookPathPrefix)] + Mask(url[i+len(WebhookPathPrefix):])
}
