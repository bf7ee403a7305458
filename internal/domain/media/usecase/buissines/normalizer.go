package buissines

import (
	"net/url"
	"strings"

	"github.com/Conte777/mediabot/internal/domain/media/consts"
)

// NormalizeURL strips playlist and tracking parameters from YouTube links so
// the extraction tool resolves a single video. Other links are returned as is.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Host)
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return raw
	}

	if v := u.Query().Get("v"); v != "" {
		return watchURL(host, v)
	}

	if u.Path == "/watch" {
		return raw
	}

	id := lastPathSegment(u.Path)
	if id == "" {
		return raw
	}

	return watchURL(host, id)
}

// watchURL builds the canonical watch link. The music host survives so the
// link still selects audio-only options.
func watchURL(host, id string) string {
	canonical := "youtube.com"
	if host == consts.MusicHost {
		canonical = consts.MusicHost
	}

	return "https://" + canonical + "/watch?" + url.Values{"v": {id}}.Encode()
}

func lastPathSegment(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
