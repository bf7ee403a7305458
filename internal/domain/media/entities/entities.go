// Package entities contains domain entities
package entities

import "time"

// Sender represents the Telegram user who posted a message
type Sender struct {
	ID int64 `json:"id"`
	// Username is the public handle without "@", empty when the user has none
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

// IncomingMessage is an inbound text message. It is not modified while handled.
type IncomingMessage struct {
	From      Sender    `json:"from"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	ChatID    int64     `json:"chatId"`
	MessageID int       `json:"messageId"`
}

// Transcode describes the post-processing step applied by the extraction tool
type Transcode struct {
	Codec   string `json:"codec"`
	Quality string `json:"quality"`
}

// DownloadOptions is the extraction tool configuration chosen per URL
type DownloadOptions struct {
	Format    string `json:"format"`
	AudioOnly bool   `json:"audioOnly"`
	// OutputTemplate is a yt-dlp output template relative to OutputDir
	OutputTemplate string     `json:"outputTemplate"`
	OutputDir      string     `json:"outputDir"`
	PostProcess    *Transcode `json:"postProcess,omitempty"`
}
