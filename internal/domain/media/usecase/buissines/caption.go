package buissines

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Conte777/mediabot/internal/domain/media/entities"
)

// queryFragmentPattern matches query leftovers such as "&list=PL..." that
// survive when a link was split by the client
var queryFragmentPattern = regexp.MustCompile(`&\S+`)

// DisplayName returns "@handle" when the sender has one, the first name otherwise
func DisplayName(sender entities.Sender) string {
	if sender.Username != "" {
		return "@" + sender.Username
	}
	return sender.FirstName
}

// ResidualText returns text with the link and stray query fragments removed
func ResidualText(text, link string) string {
	if link != "" {
		text = strings.ReplaceAll(text, link, "")
	}
	text = queryFragmentPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// BuildCaption builds the attribution caption attached to re-posted media
func BuildCaption(sender entities.Sender, text, link string) string {
	name := DisplayName(sender)

	if residual := ResidualText(text, link); residual != "" {
		return fmt.Sprintf("%s отправил сообщение с текстом \"%s\"", name, residual)
	}

	return fmt.Sprintf("%s поделился файлом", name)
}
