// Package ytdlp runs the yt-dlp command line tool
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/mediabot/config"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
)

const stderrTailSize = 512

// runner executes name with args and returns its stdout and stderr
type runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Client downloads media by running yt-dlp
type Client struct {
	binary         string
	ffmpegLocation string
	cookiesFile    string
	run            runner
	logger         zerolog.Logger
}

// NewClient creates a new yt-dlp client
func NewClient(cfg *config.DownloaderConfig, logger zerolog.Logger) *Client {
	return &Client{
		binary:         cfg.YtDlpPath,
		ffmpegLocation: cfg.FFmpegLocation,
		cookiesFile:    cfg.CookiesFile,
		run:            execRunner,
		logger:         logger.With().Str("component", "ytdlp").Logger(),
	}
}

// Download fetches url into opts.OutputDir and returns the path of the final file
func (c *Client) Download(ctx context.Context, url string, opts entities.DownloadOptions) (string, error) {
	args := c.buildArgs(url, opts)

	c.logger.Debug().Str("url", url).Strs("args", args).Msg("Running yt-dlp")

	stdout, stderr, err := c.run(ctx, c.binary, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w: %s", mediaerrors.ErrExtraction, err, tail(stderr))
	}

	if path := parsePrintedPath(stdout); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		c.logger.Warn().Str("path", path).Msg("Printed path does not exist, scanning output dir")
	}

	return singleFile(opts.OutputDir)
}

// Available reports whether the yt-dlp binary can be found
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

func (c *Client) buildArgs(url string, opts entities.DownloadOptions) []string {
	args := []string{
		"-f", opts.Format,
		"--no-playlist",
		"--no-progress",
		"--no-warnings",
		"--no-simulate",
		"-o", filepath.Join(opts.OutputDir, opts.OutputTemplate),
	}

	if c.ffmpegLocation != "" {
		args = append(args, "--ffmpeg-location", c.ffmpegLocation)
	}
	if c.cookiesFile != "" {
		args = append(args, "--cookies", c.cookiesFile)
	}

	if opts.AudioOnly {
		args = append(args, "-x")
		if opts.PostProcess != nil {
			args = append(args,
				"--audio-format", opts.PostProcess.Codec,
				"--audio-quality", opts.PostProcess.Quality+"K",
			)
		}
	}

	return append(args, "--print", "after_move:filepath", url)
}

// parsePrintedPath returns the last non-empty line of stdout
func parsePrintedPath(stdout []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// singleFile returns the only regular file in dir
func singleFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read output dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasSuffix(e.Name(), ".part") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	switch len(files) {
	case 0:
		return "", mediaerrors.ErrEmptyOutput
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("%w: %d files in output dir", mediaerrors.ErrExtraction, len(files))
	}
}

func tail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > stderrTailSize {
		s = s[len(s)-stderrTailSize:]
	}
	return s
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
