package buissines

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/entities"
)

// IsMusicURL reports whether link points to the music variant of YouTube
func IsMusicURL(link string) bool {
	return strings.Contains(link, consts.MusicHost)
}

// SelectOptions chooses extraction options for link. Files are named after
// the message timestamp. OutputDir is left for the caller.
func SelectOptions(link string, date time.Time) entities.DownloadOptions {
	template := fmt.Sprintf("%d.%%(ext)s", date.Unix())

	if IsMusicURL(link) {
		return entities.DownloadOptions{
			Format:         consts.FormatBestAudio,
			AudioOnly:      true,
			OutputTemplate: template,
			PostProcess: &entities.Transcode{
				Codec:   consts.AudioCodec,
				Quality: consts.AudioQuality,
			},
		}
	}

	return entities.DownloadOptions{
		Format:         consts.FormatBest,
		OutputTemplate: template,
	}
}

// ClassifyFile maps the file extension to the media kind used for sending
func ClassifyFile(path string) entities.FetchedFile {
	ext := strings.ToLower(filepath.Ext(path))

	kind := entities.MediaKindDocument
	switch ext {
	case ".mp4", ".webm":
		kind = entities.MediaKindVideo
	case ".mp3":
		kind = entities.MediaKindAudio
	}

	return entities.FetchedFile{Path: path, Ext: ext, Kind: kind}
}

// preferTranscoded returns the sibling .mp3 of an intermediate audio
// container when the transcode step left one on disk
func preferTranscoded(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webm" && ext != ".m4a" {
		return path
	}

	mp3 := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
	if info, err := os.Stat(mp3); err == nil && !info.IsDir() {
		return mp3
	}

	return path
}
