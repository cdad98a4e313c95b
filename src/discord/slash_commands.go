package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandProposalsSetup = "proposals-setup"
)

var manageGuild int64 = discordgo.PermissionManageGuild

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandProposalsSetup: {
		Name:                     CommandProposalsSetup,
		Description:              "Post the idea submission button and voting instructions",
		DefaultMemberPermissions: &manageGuild,
	},
}

var defaultCommandOrder = []string{
	CommandProposalsSetup,
}

// RegisterSlashCommands registers the requested slash commands for a guild.
// When no command names are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, guildID string, names ...string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to register slash commands")
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if IsDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// CommandDefinition returns the registered definition for name.
func CommandDefinition(name string) (*discordgo.ApplicationCommand, bool) {
	def, ok := commandDefinitions[name]
	return def, ok
}
