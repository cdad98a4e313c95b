package discord

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func restCode(err error) (int, bool) {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code, true
	}
	return 0, false
}

// IsUnknownMessage reports whether Discord rejected a call because the message no
// longer exists.
func IsUnknownMessage(err error) bool {
	code, ok := restCode(err)
	return ok && code == discordgo.ErrCodeUnknownMessage
}

// IsUnknownInteraction reports whether an interaction token has expired.
func IsUnknownInteraction(err error) bool {
	code, ok := restCode(err)
	return ok && code == discordgo.ErrCodeUnknownInteraction
}

// IsDuplicateCommandError reports whether a command registration collided with an
// existing one.
func IsDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
