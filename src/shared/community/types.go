package community

import "time"

// ProposalStatus is the lifecycle state of a persisted proposal.
type ProposalStatus string

const (
	StatusInProgress ProposalStatus = "in_progress"
	StatusAccepted   ProposalStatus = "accepted"
	StatusRejected   ProposalStatus = "rejected"
)

// VoteChoice is a direction on one vote axis.
type VoteChoice string

const (
	ChoiceFor     VoteChoice = "for"
	ChoiceAgainst VoteChoice = "against"
)

// User is a platform member linked to a Discord account.
type User struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	DiscordID string `gorm:"size:32;uniqueIndex"`
	Username  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Community owns proposals and is mapped to one Discord server.
type Community struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Slug      string `gorm:"size:64;uniqueIndex;not null"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiscordServer maps a guild to its community and proposal channels.
type DiscordServer struct {
	GuildID          string `gorm:"primaryKey;size:32"`
	GuildName        string `gorm:"size:100"`
	ProposeChannelID string `gorm:"size:32"`
	VoteChannelID    string `gorm:"size:32"`
	ResultChannelID  string `gorm:"size:32"`
	CommunityID      *uint64
	Community        *Community
}

// Proposal is a published idea open for (or closed after) community voting.
type Proposal struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement"`
	Title           string         `gorm:"type:text;not null"`
	Description     string         `gorm:"type:text;not null"`
	Format          string         `gorm:"size:64;index"`
	IsContributor   bool           `gorm:"not null;default:false"`
	Status          ProposalStatus `gorm:"size:16;not null;index"`
	SubmitterID     uint64         `gorm:"index;not null"`
	Submitter       *User
	CommunityID     uint64 `gorm:"index;not null"`
	Community       *Community
	EndDate         time.Time
	VotingChannelID string `gorm:"size:32"`
	VotingMessageID string `gorm:"size:32;index"`
	DedupKey        string `gorm:"size:16;uniqueIndex;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Vote is one voter's opinion on a proposal. Both axes live in the same row.
type Vote struct {
	ID           uint64      `gorm:"primaryKey;autoIncrement"`
	ProposalID   uint64      `gorm:"uniqueIndex:idx_vote_proposal_user;not null"`
	UserID       uint64      `gorm:"uniqueIndex:idx_vote_proposal_user;not null"`
	Choice       *VoteChoice `gorm:"size:8"`
	FormatChoice *VoteChoice `gorm:"size:8"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Setting represents a configuration setting stored in the database
type Setting struct {
	ID     uint8  `gorm:"primaryKey"`
	Name   string `gorm:"size:32;not null"`
	Value  string `gorm:"type:text;not null"`
	Active uint8  `gorm:"not null"`
}

// Models lists every table owned by the bot, in dependency order.
var Models = []interface{}{
	&Setting{}, &User{}, &Community{}, &DiscordServer{}, &Proposal{}, &Vote{},
}
