// Package logger contains logger infrastructure
package logger

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/mediabot/config"
)

// Module provides logger for fx dependency injection
var Module = fx.Module("logger",
	fx.Provide(provideLogger),
)

// provideLogger creates logger from config
func provideLogger(cfg *config.LoggingConfig, service *config.ServiceConfig) zerolog.Logger {
	return New(cfg.Level).With().Str("service", service.Name).Logger()
}
