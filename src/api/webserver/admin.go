package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
)

type Admin struct {
	directory *community.Directory
}

func NewAdmin(db *gorm.DB) Admin {
	return Admin{directory: community.NewDirectory(db)}
}

func validSnowflake(id string) bool {
	if id == "" {
		return true
	}
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}

// SetDiscordChannels assigns the propose, vote and result channels of a guild.
// Omitted channels keep their current value.
func (a Admin) SetDiscordChannels(c *gin.Context) {
	var req struct {
		ProposeChannelID string `json:"proposeChannelId" binding:"max=30"`
		VoteChannelID    string `json:"voteChannelId" binding:"max=30"`
		ResultChannelID  string `json:"resultChannelId" binding:"max=30"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	guildID := c.Param("guild")
	for _, id := range []string{guildID, req.ProposeChannelID, req.VoteChannelID, req.ResultChannelID} {
		if !validSnowflake(id) {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid Discord id " + strconv.Quote(id)})
			return
		}
	}

	log.Printf("api: operator %s updating proposal channels for guild %s", c.GetString("operator"), guildID)

	server, err := a.directory.SetChannels(c.Request.Context(), guildID, community.ChannelUpdate{
		ProposeChannelID: req.ProposeChannelID,
		VoteChannelID:    req.VoteChannelID,
		ResultChannelID:  req.ResultChannelID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId":          server.GuildID,
		"proposeChannelId": server.ProposeChannelID,
		"voteChannelId":    server.VoteChannelID,
		"resultChannelId":  server.ResultChannelID,
	})
}
