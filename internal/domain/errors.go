package domain

import "errors"

// Relay error types

var (
	// ErrQueueFull indicates the update queue cannot accept more updates right now
	ErrQueueFull = errors.New("update queue is full")

	// ErrDispatcherStopped indicates the dispatcher is shutting down
	ErrDispatcherStopped = errors.New("update dispatcher stopped")

	// ErrInvalidSecret indicates a webhook call without the shared secret
	ErrInvalidSecret = errors.New("invalid webhook secret")

	// ErrUnsupportedContentType indicates a webhook call that is not JSON
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrEmptyMessage indicates an attempt to send a message without text
	ErrEmptyMessage = errors.New("message text is empty")
)
