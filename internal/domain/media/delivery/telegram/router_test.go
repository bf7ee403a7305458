package telegram

import (
	"context"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func textUpdate(text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   42,
			Date: 1700000000,
			Chat: models.Chat{ID: -100500},
			From: &models.User{ID: 7, Username: "alice", FirstName: "Alice"},
			Text: text,
		},
	}
}

func TestIsCommand(t *testing.T) {
	match := IsCommand("start")

	assert.True(t, match(textUpdate("/start")))
	assert.True(t, match(textUpdate("/start@media_bot")))
	assert.True(t, match(textUpdate("/start payload")))
	assert.False(t, match(textUpdate("/starting")))
	assert.False(t, match(textUpdate("start")))
	assert.False(t, match(&models.Update{}))
}

func TestIsLinkMessage(t *testing.T) {
	assert.True(t, IsLinkMessage(textUpdate("look https://youtu.be/abc")))
	assert.True(t, IsLinkMessage(textUpdate("https://vm.tiktok.com/ZM123/")))
	assert.False(t, IsLinkMessage(textUpdate("https://vimeo.com/1")))
	assert.False(t, IsLinkMessage(textUpdate("/foo https://youtu.be/abc")))
	assert.False(t, IsLinkMessage(textUpdate("/start@media_bot https://youtu.be/abc")))
	assert.False(t, IsLinkMessage(textUpdate("")))
	assert.False(t, IsLinkMessage(&models.Update{}))
}

func TestRouter_FirstMatchWins(t *testing.T) {
	var called []string
	handler := func(name string) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			called = append(called, name)
		}
	}

	r := &Router{
		Routes: []Route{
			{Name: "/start", Match: IsCommand("start"), Handler: handler("/start")},
			{Name: "link", Match: IsLinkMessage, Handler: handler("link")},
		},
		logger: zerolog.Nop(),
	}

	// a /start carrying a link is still a command
	update := textUpdate("/start https://youtu.be/abc")
	assert.True(t, r.Match(update))
	r.Dispatch(context.Background(), nil, update)

	r.Dispatch(context.Background(), nil, textUpdate("https://youtu.be/abc"))

	assert.False(t, r.Match(textUpdate("hello")))
	r.Dispatch(context.Background(), nil, textUpdate("hello"))

	assert.Equal(t, []string{"/start", "link"}, called)
}

func TestToIncomingMessage(t *testing.T) {
	msg := toIncomingMessage(textUpdate("hi https://youtu.be/abc").Message)

	assert.Equal(t, int64(7), msg.From.ID)
	assert.Equal(t, "alice", msg.From.Username)
	assert.Equal(t, "Alice", msg.From.FirstName)
	assert.Equal(t, int64(-100500), msg.ChatID)
	assert.Equal(t, 42, msg.MessageID)
	assert.Equal(t, time.Unix(1700000000, 0), msg.Date)
	assert.Equal(t, "hi https://youtu.be/abc", msg.Text)
}

func TestToIncomingMessage_NoSender(t *testing.T) {
	m := textUpdate("https://youtu.be/abc").Message
	m.From = nil

	msg := toIncomingMessage(m)

	assert.Zero(t, msg.From.ID)
	assert.Empty(t, msg.From.Username)
}
