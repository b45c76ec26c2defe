package http

import (
	"net/http"
	"time"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// Forbidden response
	Forbidden = Status{Code: http.StatusForbidden, Message: []string{"Sorry, Permission denied"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Not Found"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Telegram Bot API is unavailable"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Busy, please retry later"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// withMessage returns a copy of s carrying msg instead of the stock text
func (s Status) withMessage(msg string) Status {
	return Status{Code: s.Code, Message: []string{msg}}
}

type (
	// HealthResponse struct - HTTP response DTO for the health probe
	HealthResponse struct {
		Service string `json:"service"`
		Mode    string `json:"mode"`
		Uptime  string `json:"uptime"`
		Queued  int    `json:"queued"`
	}

	// WebhookStatusResponse struct - HTTP response DTO for the webhook status
	WebhookStatusResponse struct {
		URL                string     `json:"url"`
		Registered         bool       `json:"registered"`
		PendingUpdateCount int        `json:"pending_update_count"`
		LastErrorMessage   string     `json:"last_error_message,omitempty"`
		LastErrorDate      *time.Time `json:"last_error_date,omitempty"`
	}
)
