// Package deps contains interface definitions for the media domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
)

// Extractor resolves a hosting-site URL into a local media file
type Extractor interface {
	// Download fetches url into opts.OutputDir and returns the resulting file path
	Download(ctx context.Context, url string, opts entities.DownloadOptions) (string, error)
}

// MediaSender defines interface for replying via Telegram.
// It is implemented by the Telegram handlers, which breaks the cyclic
// dependency between UseCase and Handlers.
type MediaSender interface {
	// SendMedia uploads file to the chat with caption, picking video, audio or document by kind
	SendMedia(ctx context.Context, chatID int64, file entities.FetchedFile, caption string) error

	// DeleteMessage deletes a message from the chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendFailureNotice replies to messageID with a generic failure text
	SendFailureNotice(ctx context.Context, chatID int64, messageID int) error
}

// FetchEventProducer publishes fetch outcomes
type FetchEventProducer interface {
	SendFetchCompleted(ctx context.Context, event *dto.FetchEvent) error
	SendFetchFailed(ctx context.Context, event *dto.FetchEvent) error
	Close() error
}

// FetchMetrics records fetch statistics
type FetchMetrics interface {
	RecordURLsMatched(count int)
	RecordFetch(kind string, attempts int, duration float64)
	RecordAttemptError(stage string)
	RecordFetchFailure(duration float64)
}
