// Package http contains operational HTTP handlers
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// BotHealthChecker reports whether the Telegram polling loop is active
type BotHealthChecker interface {
	IsRunning() bool
}

// ExtractorHealthChecker reports whether the extraction tool can be run
type ExtractorHealthChecker interface {
	Available() bool
}

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	bot       BotHealthChecker
	extractor ExtractorHealthChecker
	logger    zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(bot BotHealthChecker, extractor ExtractorHealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		bot:       bot,
		extractor: extractor,
		logger:    logger,
	}
}

// ServeHTTP implements http.Handler interface
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := h.checkComponents(ctx)
	status := determineOverallStatus(components)

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	// Degraded still answers 200
	statusCode := http.StatusOK
	if status == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	if status == HealthStatusUnhealthy {
		logEvent = h.logger.Warn()
	} else if status == HealthStatusDegraded {
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Int("status_code", statusCode).
		Interface("components", components).
		Msg("Health check completed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent, only log
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
	}
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	select {
	case <-ctx.Done():
		return []ComponentHealth{{
			Name:    "health_check",
			Healthy: false,
			Message: "Health check timeout",
		}}
	default:
	}

	return []ComponentHealth{
		component("telegram_bot", h.bot.IsRunning(), "Telegram polling loop is not running"),
		component("extractor", h.extractor.Available(), "yt-dlp binary is not available"),
	}
}

func component(name string, healthy bool, failure string) ComponentHealth {
	c := ComponentHealth{Name: name, Healthy: healthy}
	if !healthy {
		c.Message = failure
	}
	return c
}

// determineOverallStatus determines overall health status based on component health
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	allHealthy := true
	anyHealthy := false

	for _, c := range components {
		if !c.Healthy {
			allHealthy = false
		} else {
			anyHealthy = true
		}
	}

	if allHealthy {
		return HealthStatusHealthy
	} else if anyHealthy {
		return HealthStatusDegraded
	}

	return HealthStatusUnhealthy
}
