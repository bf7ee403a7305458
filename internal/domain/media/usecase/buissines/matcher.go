package buissines

import "regexp"

// urlPattern matches links to the supported hosting sites
var urlPattern = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com|youtu\.be|music\.youtube\.com|tiktok\.com|vm\.tiktok\.com|open\.spotify\.com)\S+`)

// MatchURLs returns all supported links in text, left to right.
// It returns nil when text has none.
func MatchURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
