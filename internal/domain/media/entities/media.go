package entities

// MediaKind selects the Telegram send primitive for a fetched file
type MediaKind string

const (
	MediaKindVideo    MediaKind = "video"
	MediaKindAudio    MediaKind = "audio"
	MediaKindDocument MediaKind = "document"
)

// FetchedFile is a file produced by one fetch attempt.
// Path lives inside the attempt's temporary directory.
type FetchedFile struct {
	Path string
	Ext  string
	Kind MediaKind
}
