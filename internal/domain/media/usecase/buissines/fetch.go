package buissines

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
	pkgerrors "github.com/Conte777/mediabot/pkg/errors"
)

// FetchAndSend downloads link and posts it to the chat of msg with an
// attribution caption. Each attempt runs in its own temporary directory which
// is removed when the attempt ends. After consts.MaxFetchAttempts failures the
// user gets a single generic failure notice.
func (uc *UseCase) FetchAndSend(ctx context.Context, msg *entities.IncomingMessage, link string) error {
	if uc.sender == nil {
		uc.logger.Error().Msg("MediaSender is not set")
		return mediaerrors.ErrSenderNotSet
	}

	target := NormalizeURL(link)
	caption := BuildCaption(msg.From, msg.Text, link)
	fetchID := uuid.NewString()
	started := time.Now()

	log := uc.logger.With().
		Str("fetch_id", fetchID).
		Str("url", target).
		Int64("chat_id", msg.ChatID).
		Int("message_id", msg.MessageID).
		Logger()

	event := &dto.FetchEvent{
		FetchID:   fetchID,
		URL:       target,
		ChatID:    msg.ChatID,
		MessageID: msg.MessageID,
		UserID:    msg.From.ID,
	}

	send := func(ctx context.Context, file entities.FetchedFile) error {
		if err := uc.sender.SendMedia(ctx, msg.ChatID, file, caption); err != nil {
			uc.metrics.RecordAttemptError("send")
			return fmt.Errorf("%w: %w", mediaerrors.ErrSendMedia, err)
		}
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= consts.MaxFetchAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		file, err := uc.withFetchedFile(ctx, log, target, msg.Date, send)
		if err == nil {
			elapsed := time.Since(started)
			log.Info().
				Int("attempt", attempt).
				Str("media_kind", string(file.Kind)).
				Dur("elapsed", elapsed).
				Msg("Media sent successfully")

			uc.metrics.RecordFetch(string(file.Kind), attempt, elapsed.Seconds())

			if err := uc.sender.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
				log.Warn().Err(err).Msg("Failed to delete original message")
			}

			event.MediaKind = string(file.Kind)
			event.Attempts = attempt
			uc.publish(ctx, log, event, elapsed, uc.producer.SendFetchCompleted)
			return nil
		}

		lastErr = err
		log.Error().
			Err(err).
			Int("attempt", attempt).
			Str("error_kind", pkgerrors.Kind(err)).
			Msg("Fetch attempt failed")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	elapsed := time.Since(started)
	uc.metrics.RecordFetchFailure(elapsed.Seconds())

	if err := uc.sender.SendFailureNotice(ctx, msg.ChatID, msg.MessageID); err != nil {
		log.Error().Err(err).Msg("Failed to send failure notice")
	}

	event.Attempts = consts.MaxFetchAttempts
	event.Error = lastErr.Error()
	uc.publish(ctx, log, event, elapsed, uc.producer.SendFetchFailed)

	return fmt.Errorf("%w after %d attempts: %w", mediaerrors.ErrFetchFailed, consts.MaxFetchAttempts, lastErr)
}

// FetchToDir downloads link once and copies the result into destDir.
// It returns the path of the copy.
func (uc *UseCase) FetchToDir(ctx context.Context, link, destDir string) (string, error) {
	target := NormalizeURL(link)
	log := uc.logger.With().Str("url", target).Logger()

	var dest string
	_, err := uc.withFetchedFile(ctx, log, target, time.Now(), func(_ context.Context, file entities.FetchedFile) error {
		dest = filepath.Join(destDir, filepath.Base(file.Path))
		return copyFile(file.Path, dest)
	})
	if err != nil {
		return "", err
	}

	return dest, nil
}

// withFetchedFile runs a single attempt: it creates a temporary directory,
// runs the extractor there and hands the classified file to use. The
// directory is removed on every return path.
func (uc *UseCase) withFetchedFile(
	ctx context.Context,
	log zerolog.Logger,
	target string,
	date time.Time,
	use func(context.Context, entities.FetchedFile) error,
) (entities.FetchedFile, error) {
	dir, err := os.MkdirTemp(uc.tempDir, "mediabot-")
	if err != nil {
		return entities.FetchedFile{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove temp dir")
		}
	}()

	log.Debug().Str("dir", dir).Msg("Temp dir created")

	opts := SelectOptions(target, date)
	opts.OutputDir = dir

	path, err := uc.extractor.Download(ctx, target, opts)
	if err != nil {
		uc.metrics.RecordAttemptError("extract")
		return entities.FetchedFile{}, err
	}

	if opts.AudioOnly {
		path = preferTranscoded(path)
	}

	file := ClassifyFile(path)
	log.Info().Str("file", filepath.Base(path)).Str("media_kind", string(file.Kind)).Msg("File downloaded")

	return file, use(ctx, file)
}

func (uc *UseCase) publish(
	ctx context.Context,
	log zerolog.Logger,
	event *dto.FetchEvent,
	elapsed time.Duration,
	send func(context.Context, *dto.FetchEvent) error,
) {
	event.DurationMs = elapsed.Milliseconds()
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	if err := send(ctx, event); err != nil {
		log.Warn().Err(err).Msg("Failed to publish fetch event")
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}

	return out.Close()
}
