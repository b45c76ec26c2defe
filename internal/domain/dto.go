package domain

import "time"

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// SendMessageRequest struct - Domain send message request DTO
	SendMessageRequest struct {
		ChatID           int64
		Text             string
		ReplyToMessageID int
	}

	// SentMessage struct - Domain send message response DTO
	SentMessage struct {
		MessageID int
		ChatID    int64
	}

	// WebhookRegistration struct - Domain setWebhook request DTO
	WebhookRegistration struct {
		URL         string
		SecretToken string
	}

	// WebhookInfo struct - Domain getWebhookInfo response DTO
	WebhookInfo struct {
		URL                string
		PendingUpdateCount int
		LastErrorMessage   string
		LastErrorDate      time.Time
	}

	// WebhookStatus struct - Domain webhook status DTO
	WebhookStatus struct {
		URL                string     `json:"url"`
		Registered         bool       `json:"registered"`
		PendingUpdateCount int        `json:"pending_update_count"`
		LastErrorMessage   string     `json:"last_error_message,omitempty"`
		LastErrorDate      *time.Time `json:"last_error_date,omitempty"`
	}
)
