// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/mediabot/internal/infrastructure/http"
	"github.com/Conte777/mediabot/internal/infrastructure/logger"
	"github.com/Conte777/mediabot/internal/infrastructure/metrics"
	"github.com/Conte777/mediabot/internal/infrastructure/telegram"
	"github.com/Conte777/mediabot/internal/infrastructure/ytdlp"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	metrics.Module,
	telegram.Module,
	ytdlp.Module,
	http.Module,
)
