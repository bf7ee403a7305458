// Package dto contains data transfer objects for the media domain
package dto

// StartCommandRequest represents a request to handle /start command
type StartCommandRequest struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// FetchEvent is published to Kafka when a URL is delivered or given up on
type FetchEvent struct {
	FetchID   string `json:"fetch_id"`
	URL       string `json:"url"`
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
	UserID    int64  `json:"user_id"`
	MediaKind string `json:"media_kind,omitempty"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	// DurationMs covers all attempts
	DurationMs int64  `json:"duration_ms"`
	OccurredAt string `json:"occurred_at"`
}
