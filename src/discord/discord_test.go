package discord

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func restError(code int, message string) *discordgo.RESTError {
	return &discordgo.RESTError{
		Response:     &http.Response{Status: "404 Not Found", StatusCode: http.StatusNotFound},
		ResponseBody: []byte(message),
		Message:      &discordgo.APIErrorMessage{Code: code, Message: message},
	}
}

func TestIsUnknownInteraction(t *testing.T) {
	assert.True(t, IsUnknownInteraction(fmt.Errorf("edit interaction response: %w", restError(discordgo.ErrCodeUnknownInteraction, "Unknown interaction"))))
	assert.False(t, IsUnknownInteraction(restError(discordgo.ErrCodeUnknownMessage, "Unknown Message")))
	assert.False(t, IsUnknownInteraction(errors.New("boom")))
}

func TestIsUnknownMessage(t *testing.T) {
	assert.True(t, IsUnknownMessage(restError(discordgo.ErrCodeUnknownMessage, "Unknown Message")))
	assert.True(t, IsUnknownMessage(fmt.Errorf("fetch reactors: %w", restError(discordgo.ErrCodeUnknownMessage, "Unknown Message"))))
	assert.False(t, IsUnknownMessage(restError(discordgo.ErrCodeUnknownChannel, "Unknown Channel")))
	assert.False(t, IsUnknownMessage(errors.New("boom")))
	assert.False(t, IsUnknownMessage(nil))
}

func TestIsDuplicateCommandError(t *testing.T) {
	assert.True(t, IsDuplicateCommandError(restError(50035, "Command already exists")))
	assert.False(t, IsDuplicateCommandError(errors.New("timeout")))
}

func TestWrapURLsNoEmbed(t *testing.T) {
	assert.Equal(t, "see <https://example.org/a>.", WrapURLsNoEmbed("see https://example.org/a."))
	assert.Equal(t, "no links", WrapURLsNoEmbed("no links"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abcd", 3))
	assert.Equal(t, "✅✅…", Truncate("✅✅✅✅", 3))
	assert.Equal(t, "abcd", Truncate("abcd", 0))
}

func TestCommandDefinition(t *testing.T) {
	def, ok := CommandDefinition(CommandProposalsSetup)
	assert.True(t, ok)
	assert.NotNil(t, def.DefaultMemberPermissions)
	_, ok = CommandDefinition("unknown")
	assert.False(t, ok)
}
