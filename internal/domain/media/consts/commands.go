// Package consts contains constants for the media domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart = Command{Name: "start", Description: "Начать работу с ботом"}
)

// AllCommands contains all available bot commands for menu registration
var AllCommands = []Command{
	CommandStart,
}

// User-facing texts
const (
	GreetingText      = "Привет! Я бот, который может скачивать контент с YouTube и TikTok. Просто отправь мне ссылку."
	FailureNoticeText = "Не удалось скачать файл по ссылке. Попробуйте позже."
)
