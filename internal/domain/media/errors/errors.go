// Package errors contains domain-specific errors for the media domain
package errors

import (
	pkgerrors "github.com/Conte777/mediabot/pkg/errors"
)

// Domain errors for media fetching
var (
	ErrNoURL         = pkgerrors.NewValidationError("message contains no supported links")
	ErrSenderNotSet  = pkgerrors.NewInternalError("media sender is not set")
	ErrExtraction    = pkgerrors.NewUnavailableError("extraction tool failed")
	ErrEmptyOutput   = pkgerrors.NewNotFoundError("extraction tool produced no file")
	ErrFileTooLarge  = pkgerrors.NewValidationError("fetched file exceeds upload limit")
	ErrSendMedia     = pkgerrors.NewUnavailableError("failed to send media")
	ErrFetchFailed   = pkgerrors.NewUnavailableError("media fetch failed")
	ErrTelegramAPI   = pkgerrors.NewUnavailableError("telegram API error")
	ErrKafkaProducer = pkgerrors.NewInternalError("kafka producer error")
)
