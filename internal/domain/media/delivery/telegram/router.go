// Package telegram contains Telegram delivery layer
package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/usecase/buissines"
)

// Route binds an update predicate to a handler
type Route struct {
	Name    string
	Match   tgbot.MatchFunc
	Handler tgbot.HandlerFunc
}

// Router registers Telegram bot handlers.
// Routes are tried in order and the first match wins.
type Router struct {
	Routes []Route
	logger zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		Routes: []Route{
			{Name: "/start", Match: IsCommand(consts.CommandStart.Name), Handler: handlers.HandleStart},
			{Name: "link", Match: IsLinkMessage, Handler: handlers.HandleLinkMessage},
		},
		logger: logger,
	}
}

// RegisterRoutes registers the router on the bot as a single handler so
// that route order is preserved
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandlerMatchFunc(r.Match, r.Dispatch)

	r.logger.Info().Int("routes", len(r.Routes)).Msg("All Telegram handlers registered successfully")
}

// Match reports whether any route accepts update
func (r *Router) Match(update *models.Update) bool {
	return r.route(update) != nil
}

// Dispatch runs the first route accepting update
func (r *Router) Dispatch(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	route := r.route(update)
	if route == nil {
		return
	}

	r.logger.Debug().Str("route", route.Name).Msg("Dispatching update")
	route.Handler(ctx, bot, update)
}

func (r *Router) route(update *models.Update) *Route {
	for i := range r.Routes {
		if r.Routes[i].Match(update) {
			return &r.Routes[i]
		}
	}
	return nil
}

// IsCommand matches "/name", "/name@bot" and "/name args"
func IsCommand(name string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}

		word, _, _ := strings.Cut(update.Message.Text, " ")
		word, _, _ = strings.Cut(word, "@")
		return word == "/"+name
	}
}

// IsLinkMessage matches non-command text messages containing at least one
// supported link
func IsLinkMessage(update *models.Update) bool {
	if update.Message == nil || update.Message.Text == "" {
		return false
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return false
	}
	return len(buissines.MatchURLs(update.Message.Text)) > 0
}
