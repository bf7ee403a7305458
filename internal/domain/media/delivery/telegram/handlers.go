package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/dto"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
	"github.com/Conte777/mediabot/internal/domain/media/usecase/buissines"
)

// Constants for Telegram API
const (
	RequestTimeout = 30 * time.Second
	UploadTimeout  = 5 * time.Minute
	MaxUploadSize  = 50 * 1024 * 1024 // 50MB, Bot API upload limit
)

// Handlers contains Telegram handlers
// Implements deps.MediaSender interface
type Handlers struct {
	uc      *buissines.UseCase
	bot     *tgbot.Bot
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, limiter *rate.Limiter, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:      uc,
		bot:     bot,
		limiter: limiter,
		logger:  logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := toIncomingMessage(update.Message)

	req := &dto.StartCommandRequest{
		UserID:   msg.From.ID,
		Username: msg.From.Username,
	}

	resp, err := h.uc.HandleStart(ctx, req)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to handle /start")
		return
	}

	if err := h.sendText(ctx, msg.ChatID, resp.Message, nil); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("Failed to send greeting")
	}
}

// HandleLinkMessage fetches every supported link of the message
func (h *Handlers) HandleLinkMessage(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := toIncomingMessage(update.Message)

	err := h.uc.HandleMessage(ctx, msg)
	switch {
	case err == nil:
	case errors.Is(err, mediaerrors.ErrNoURL):
	case errors.Is(err, context.Canceled):
		h.logger.Warn().Int64("chat_id", msg.ChatID).Msg("Message handling cancelled")
	default:
		h.logger.Error().Err(err).
			Int64("chat_id", msg.ChatID).
			Int("message_id", msg.MessageID).
			Msg("Failed to handle link message")
	}
}

// SendMedia implements deps.MediaSender interface
func (h *Handlers) SendMedia(ctx context.Context, chatID int64, file entities.FetchedFile, caption string) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("failed to open fetched file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat fetched file: %w", err)
	}
	// Oversized files fail the attempt like any other error, so they are
	// downloaded again on the remaining attempts.
	if info.Size() > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes", mediaerrors.ErrFileTooLarge, info.Size())
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	upload := &models.InputFileUpload{Filename: filepath.Base(file.Path), Data: f}

	switch file.Kind {
	case entities.MediaKindVideo:
		_, err = h.bot.SendVideo(sendCtx, &tgbot.SendVideoParams{
			ChatID:            chatID,
			Video:             upload,
			Caption:           caption,
			SupportsStreaming: true,
		})
	case entities.MediaKindAudio:
		_, err = h.bot.SendAudio(sendCtx, &tgbot.SendAudioParams{
			ChatID:  chatID,
			Audio:   upload,
			Caption: caption,
		})
	default:
		_, err = h.bot.SendDocument(sendCtx, &tgbot.SendDocumentParams{
			ChatID:   chatID,
			Document: upload,
			Caption:  caption,
		})
	}
	if err != nil {
		return fmt.Errorf("%w: %w", mediaerrors.ErrTelegramAPI, err)
	}

	h.logger.Debug().
		Int64("chat_id", chatID).
		Str("media_kind", string(file.Kind)).
		Int64("size", info.Size()).
		Msg("Media uploaded")

	return nil
}

// DeleteMessage implements deps.MediaSender interface
func (h *Handlers) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := h.bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		return fmt.Errorf("%w: %w", mediaerrors.ErrTelegramAPI, err)
	}

	return nil
}

// SendFailureNotice implements deps.MediaSender interface
func (h *Handlers) SendFailureNotice(ctx context.Context, chatID int64, messageID int) error {
	return h.sendText(ctx, chatID, consts.FailureNoticeText, &models.ReplyParameters{
		MessageID:                messageID,
		AllowSendingWithoutReply: true,
	})
}

func (h *Handlers) sendText(ctx context.Context, chatID int64, text string, reply *models.ReplyParameters) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return err
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: reply,
	}); err != nil {
		return fmt.Errorf("%w: %w", mediaerrors.ErrTelegramAPI, err)
	}

	return nil
}
