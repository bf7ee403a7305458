package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Conte777/mediabot/config"
	"github.com/Conte777/mediabot/internal/domain/media/repository/kafka"
	"github.com/Conte777/mediabot/internal/domain/media/usecase/buissines"
	"github.com/Conte777/mediabot/internal/infrastructure/logger"
	"github.com/Conte777/mediabot/internal/infrastructure/metrics"
	"github.com/Conte777/mediabot/internal/infrastructure/ytdlp"
)

var fetchOutputDir string

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a single link without Telegram",
	Long: `Download a single link the same way the bot does and save it locally.

Examples:
  mediabot fetch https://youtu.be/dQw4w9WgXcQ
  mediabot fetch -o ~/music https://music.youtube.com/watch?v=abc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd.Context(), args[0], fetchOutputDir)
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutputDir, "output", "o", ".", "directory to save the file into")
}

func runFetch(ctx context.Context, link, outputDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(buissines.MatchURLs(link)) == 0 {
		return fmt.Errorf("unsupported link: %s", link)
	}

	cfg := config.Read()
	if err := cfg.Downloader.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	client := ytdlp.NewClient(&cfg.Downloader, log)
	if !client.Available() {
		return fmt.Errorf("%s not found, install yt-dlp or set YTDLP_PATH", cfg.Downloader.YtDlpPath)
	}

	uc := buissines.NewUseCase(client, kafka.NewNopProducer(), metrics.GetDefaultMetrics(), &cfg.Downloader, log)

	path, err := uc.FetchToDir(ctx, link, outputDir)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
