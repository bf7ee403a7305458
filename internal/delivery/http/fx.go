package http

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/mediabot/internal/infrastructure/http/server"
	"github.com/Conte777/mediabot/internal/infrastructure/telegram"
	"github.com/Conte777/mediabot/internal/infrastructure/ytdlp"
)

// Module registers operational handlers on the HTTP server
var Module = fx.Module("http-delivery",
	fx.Provide(provideHealthHandler),
	fx.Invoke(registerHealth),
)

func provideHealthHandler(bot *telegram.Bot, client *ytdlp.Client, logger zerolog.Logger) *HealthHandler {
	return NewHealthHandler(bot, client, logger.With().Str("component", "health").Logger())
}

func registerHealth(srv *server.Server, h *HealthHandler) {
	srv.RegisterHandler("/health", h)
}
