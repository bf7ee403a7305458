// Package media contains the media fetching domain module
package media

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
	telegramDelivery "github.com/Conte777/mediabot/internal/domain/media/delivery/telegram"
	"github.com/Conte777/mediabot/internal/domain/media/deps"
	kafkaRepo "github.com/Conte777/mediabot/internal/domain/media/repository/kafka"
	"github.com/Conte777/mediabot/internal/domain/media/usecase/buissines"
	"github.com/Conte777/mediabot/internal/infrastructure/metrics"
	"github.com/Conte777/mediabot/internal/infrastructure/telegram"
	"github.com/Conte777/mediabot/internal/infrastructure/ytdlp"
)

// Module provides media domain components for fx dependency injection
var Module = fx.Module("media",
	// Repository
	fx.Provide(kafkaRepo.NewProducer),

	// Infrastructure adapters
	fx.Provide(provideExtractor),
	fx.Provide(provideFetchMetrics),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

func provideExtractor(client *ytdlp.Client) deps.Extractor {
	return client
}

func provideFetchMetrics(m *metrics.Metrics) deps.FetchMetrics {
	return m
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(
	uc *buissines.UseCase,
	bot *telegram.Bot,
	limiter *rate.Limiter,
	logger zerolog.Logger,
) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), limiter, logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	producer deps.FetchEventProducer,
	logger zerolog.Logger,
) {
	// Handlers implements deps.MediaSender
	// This resolves the cyclic dependency: UseCase -> MediaSender <- Handlers -> UseCase
	uc.SetSender(handlers)

	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := setCommands(ctx, bot.Raw()); err != nil {
				logger.Warn().Err(err).Msg("Failed to register bot commands menu")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})
}

// setCommands publishes the command menu shown by Telegram clients
func setCommands(ctx context.Context, bot *tgbot.Bot) error {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, c := range consts.AllCommands {
		commands = append(commands, models.BotCommand{
			Command:     c.Name,
			Description: c.Description,
		})
	}

	_, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands})
	return err
}
