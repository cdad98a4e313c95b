// Package communitytest provides in-memory databases seeded with communities
// and users for tests.
package communitytest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/snowledge/proposals/src/shared/community"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with the bot schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite serialises writers; one connection keeps concurrent tests free of
	// "database is locked" errors while still interleaving statements.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, community.Migrate(db))
	return db
}

// Guild describes a seeded community and its Discord mapping.
type Guild struct {
	Community community.Community
	Server    community.DiscordServer
}

// SeedGuild creates a community mapped to guildID with the given channels.
func SeedGuild(t *testing.T, db *gorm.DB, guildID, voteChannelID, resultChannelID string) Guild {
	t.Helper()

	c := community.Community{Slug: "community-" + guildID, Name: "Community " + guildID}
	require.NoError(t, db.Create(&c).Error)

	s := community.DiscordServer{
		GuildID:          guildID,
		GuildName:        "Guild " + guildID,
		ProposeChannelID: "propose-" + guildID,
		VoteChannelID:    voteChannelID,
		ResultChannelID:  resultChannelID,
		CommunityID:      &c.ID,
	}
	require.NoError(t, db.Create(&s).Error)

	return Guild{Community: c, Server: s}
}

// SeedUser creates a user linked to discordID.
func SeedUser(t *testing.T, db *gorm.DB, discordID string) community.User {
	t.Helper()

	u := community.User{DiscordID: discordID, Username: "user-" + discordID}
	require.NoError(t, db.Create(&u).Error)
	return u
}
