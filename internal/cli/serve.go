package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Conte777/mediabot/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot until interrupted.

Configuration is read from the environment and an optional .env file.
TELEGRAM_BOT_TOKEN is required.

HTTP Endpoints (SERVICE_PORT):
  GET /health             # Bot and yt-dlp status
  GET /metrics            # Prometheus metrics`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fx.New(app.CreateApp()).Run()
	},
}
