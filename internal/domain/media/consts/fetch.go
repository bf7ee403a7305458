package consts

// MaxFetchAttempts bounds attempts per URL, including the first one
const MaxFetchAttempts = 3

// MusicHost is the host whose links are fetched as audio only
const MusicHost = "music.youtube.com"

// Stream selectors and transcode settings passed to the extraction tool
const (
	FormatBest      = "best"
	FormatBestAudio = "bestaudio/best"
	AudioCodec      = "mp3"
	AudioQuality    = "192"
)
