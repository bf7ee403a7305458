package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the media bot
type Config struct {
	Telegram   TelegramConfig
	Downloader DownloaderConfig
	Kafka      KafkaConfig
	Logging    LoggingConfig
	Service    ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
	// SendRate is the number of outbound Bot API calls allowed per second
	SendRate  float64
	SendBurst int
}

// DownloaderConfig holds yt-dlp configuration
type DownloaderConfig struct {
	YtDlpPath      string
	FFmpegLocation string
	CookiesFile    string
	// TempDir is the parent for per-attempt temporary directories, empty means os.TempDir()
	TempDir string
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables fetch events.
type KafkaConfig struct {
	Brokers []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config     *Config
	Telegram   *TelegramConfig
	Downloader *DownloaderConfig
	Kafka      *KafkaConfig
	Logging    *LoggingConfig
	Service    *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:     cfg,
		Telegram:   &cfg.Telegram,
		Downloader: &cfg.Downloader,
		Kafka:      &cfg.Kafka,
		Logging:    &cfg.Logging,
		Service:    &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := Read()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads configuration from environment variables without validation.
// Commands that do not talk to Telegram validate only the sections they use.
func Read() *Config {
	// Load .env file if exists
	_ = godotenv.Load()

	return &Config{
		Telegram: TelegramConfig{
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			SendRate:  getEnvFloat("TELEGRAM_SEND_RATE", 1),
			SendBurst: getEnvInt("TELEGRAM_SEND_BURST", 5),
		},
		Downloader: DownloaderConfig{
			YtDlpPath:      getEnv("YTDLP_PATH", "yt-dlp"),
			FFmpegLocation: getEnv("FFMPEG_LOCATION", ""),
			CookiesFile:    getEnv("YTDLP_COOKIES_FILE", ""),
			TempDir:        getEnv("DOWNLOAD_TEMP_DIR", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "mediabot"),
			Port: getEnv("SERVICE_PORT", "8081"),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Telegram.SendRate <= 0 {
		return fmt.Errorf("TELEGRAM_SEND_RATE must be positive, got %v", c.Telegram.SendRate)
	}

	if c.Telegram.SendBurst < 1 {
		return fmt.Errorf("TELEGRAM_SEND_BURST must be at least 1, got %d", c.Telegram.SendBurst)
	}

	if c.Service.Port == "" {
		return fmt.Errorf("SERVICE_PORT is required")
	}

	return c.Downloader.Validate()
}

// Validate validates the downloader section
func (c *DownloaderConfig) Validate() error {
	if c.YtDlpPath == "" {
		return fmt.Errorf("YTDLP_PATH cannot be empty")
	}

	if c.TempDir != "" {
		info, err := os.Stat(c.TempDir)
		if err != nil {
			return fmt.Errorf("DOWNLOAD_TEMP_DIR is not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("DOWNLOAD_TEMP_DIR %q is not a directory", c.TempDir)
		}
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList splits a comma separated value dropping empty items
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
