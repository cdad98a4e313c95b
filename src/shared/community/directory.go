package community

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Directory resolves platform identifiers to internal users and communities.
type Directory struct {
	db *gorm.DB
}

// NewDirectory creates a new directory backed by db.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// UserByDiscordID returns the user linked to a Discord account, or nil when none is.
func (d *Directory) UserByDiscordID(ctx context.Context, discordID string) (*User, error) {
	if discordID == "" {
		return nil, nil
	}

	var user User
	err := d.db.WithContext(ctx).Where("discord_id = ?", discordID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ServerByGuildID returns the guild mapping with its community preloaded, or nil
// when the guild is unknown.
func (d *Directory) ServerByGuildID(ctx context.Context, guildID string) (*DiscordServer, error) {
	if guildID == "" {
		return nil, nil
	}

	var server DiscordServer
	err := d.db.WithContext(ctx).Preload("Community").Where("guild_id = ?", guildID).First(&server).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// ChannelUpdate carries the channel ids an operator wants to assign to a guild.
// Empty fields leave the stored value untouched.
type ChannelUpdate struct {
	ProposeChannelID string
	VoteChannelID    string
	ResultChannelID  string
}

// SetChannels assigns proposal channels to a guild, creating the mapping when needed.
func (d *Directory) SetChannels(ctx context.Context, guildID string, upd ChannelUpdate) (*DiscordServer, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guildID cannot be empty")
	}

	server := DiscordServer{GuildID: guildID}
	if err := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&server).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.ProposeChannelID != "" {
		updates["propose_channel_id"] = upd.ProposeChannelID
	}
	if upd.VoteChannelID != "" {
		updates["vote_channel_id"] = upd.VoteChannelID
	}
	if upd.ResultChannelID != "" {
		updates["result_channel_id"] = upd.ResultChannelID
	}
	if len(updates) > 0 {
		if err := d.db.WithContext(ctx).Model(&DiscordServer{}).
			Where("guild_id = ?", guildID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return d.ServerByGuildID(ctx, guildID)
}

// Migrate creates or updates every table the bot owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("community: auto-migrate: %w", err)
	}
	log.Printf("community: schema migrated (%d tables)", len(Models))
	return nil
}
