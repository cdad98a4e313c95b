package discord

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxDiscordMessageLen = 2000
	MaxEmbedFieldLen     = 1024
)

var urlRegex = regexp.MustCompile(`https?://[^\s\[\]()<>]+`)

// WrapURLsNoEmbed wraps URLs in angle brackets to prevent Discord link previews.
func WrapURLsNoEmbed(text string) string {
	return urlRegex.ReplaceAllStringFunc(text, func(url string) string {
		trimmed := strings.TrimRight(url, ".,;:!?)")
		return fmt.Sprintf("<%s>%s", trimmed, url[len(trimmed):])
	})
}

// Truncate shortens text to at most max runes, marking the cut with an ellipsis.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
