package ytdlp

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides the yt-dlp client for fx dependency injection
var Module = fx.Module("ytdlp",
	fx.Provide(NewClient),
	fx.Invoke(checkBinary),
)

// checkBinary warns at startup when yt-dlp is missing so that the
// health endpoint is not the only place it shows up
func checkBinary(c *Client, logger zerolog.Logger) {
	if !c.Available() {
		logger.Warn().Str("binary", c.binary).Msg("yt-dlp binary not found in PATH")
	}
}
