// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/mediabot/config"
	httpDelivery "github.com/Conte777/mediabot/internal/delivery/http"
	"github.com/Conte777/mediabot/internal/domain"
	"github.com/Conte777/mediabot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, telegram bot, yt-dlp, metrics, http server)
		infrastructure.Module,

		// Domain (media fetching)
		domain.Module,

		// Operational endpoints
		httpDelivery.Module,
	)
}
