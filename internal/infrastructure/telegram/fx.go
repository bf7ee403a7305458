package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/Conte777/mediabot/config"
)

// Module provides Telegram bot for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Provide(provideSendLimiter),
	fx.Invoke(registerLifecycle),
)

// provideBot creates Telegram bot from config
func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg.BotToken, logger)
}

// provideSendLimiter throttles outbound Bot API calls
func provideSendLimiter(cfg *config.TelegramConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendBurst)
}

// registerLifecycle registers bot lifecycle hooks
func registerLifecycle(lc fx.Lifecycle, bot *Bot) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			// Start is blocking
			go func() {
				_ = bot.Start(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			return bot.Stop()
		},
	})
}
