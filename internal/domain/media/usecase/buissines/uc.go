// Package buissines contains business logic for the media domain
package buissines

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/mediabot/config"
	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/deps"
	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
)

// UseCase contains business logic for media fetching
type UseCase struct {
	extractor deps.Extractor
	producer  deps.FetchEventProducer
	metrics   deps.FetchMetrics
	sender    deps.MediaSender
	tempDir   string
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(
	extractor deps.Extractor,
	producer deps.FetchEventProducer,
	metrics deps.FetchMetrics,
	cfg *config.DownloaderConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		extractor: extractor,
		producer:  producer,
		metrics:   metrics,
		tempDir:   cfg.TempDir,
		logger:    logger,
	}
}

// SetSender sets the MediaSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.MediaSender) {
	uc.sender = sender
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartCommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	return &dto.CommandResponse{Message: consts.GreetingText}, nil
}

// HandleMessage fetches every supported link in msg, one after another in
// the order they appear. Failures of one link do not stop the others.
func (uc *UseCase) HandleMessage(ctx context.Context, msg *entities.IncomingMessage) error {
	urls := MatchURLs(msg.Text)
	if len(urls) == 0 {
		uc.logger.Debug().
			Int64("chat_id", msg.ChatID).
			Int("message_id", msg.MessageID).
			Msg("No link found in message")
		return mediaerrors.ErrNoURL
	}

	uc.metrics.RecordURLsMatched(len(urls))

	var errs []error
	for _, link := range urls {
		uc.logger.Info().
			Int64("user_id", msg.From.ID).
			Int64("chat_id", msg.ChatID).
			Str("url", link).
			Msg("Link detected")

		if err := uc.FetchAndSend(ctx, msg, link); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", link, err))
		}
	}

	return errors.Join(errs...)
}
