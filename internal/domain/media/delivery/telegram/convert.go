package telegram

import (
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/Conte777/mediabot/internal/domain/media/entities"
)

// toIncomingMessage converts a Telegram message into the domain message
func toIncomingMessage(msg *models.Message) *entities.IncomingMessage {
	in := &entities.IncomingMessage{
		Text:      msg.Text,
		Date:      time.Unix(int64(msg.Date), 0),
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}

	if msg.From != nil {
		in.From = entities.Sender{
			ID:        msg.From.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
		}
	}

	return in
}
