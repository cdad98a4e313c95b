package proposals

import (
	"context"
	"fmt"
	"log"

	"github.com/snowledge/proposals/src/actions/proposals/data"
	shareddiscord "github.com/snowledge/proposals/src/discord"
	"github.com/snowledge/proposals/src/shared/community"
)

// ReactionEvent is one reaction added to a message.
type ReactionEvent struct {
	UserID    string
	IsBot     bool
	GuildID   string
	ChannelID string
	MessageID string
	Emoji     string
}

// Counts is the live reactor count per vote symbol.
type Counts struct {
	SubjectFor     int
	SubjectAgainst int
	FormatFor      int
	FormatAgainst  int
}

// Outcome is the result of evaluating a tally.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRejected
	OutcomeAccepted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Status returns the proposal status an outcome moves to.
func (o Outcome) Status() community.ProposalStatus {
	if o == OutcomeAccepted {
		return community.StatusAccepted
	}
	return community.StatusRejected
}

// Decide applies the thresholds: rejection is checked first, then acceptance,
// so a proposal meeting both is accepted.
func Decide(c Counts, votesRequired int) Outcome {
	outcome := OutcomeNone
	if c.SubjectAgainst >= votesRequired {
		outcome = OutcomeRejected
	}
	if c.SubjectFor >= votesRequired {
		outcome = OutcomeAccepted
	}
	return outcome
}

// Classify maps a reaction symbol to the vote it expresses.
func Classify(emoji string) (data.Axis, community.VoteChoice, bool) {
	switch emoji {
	case EmojiSubjectFor:
		return data.AxisSubject, community.ChoiceFor, true
	case EmojiSubjectAgainst:
		return data.AxisSubject, community.ChoiceAgainst, true
	case EmojiFormatFor:
		return data.AxisFormat, community.ChoiceFor, true
	case EmojiFormatAgainst:
		return data.AxisFormat, community.ChoiceAgainst, true
	}
	return "", "", false
}

// HandleReaction records the reactor's vote and finalizes the proposal once a
// threshold is met. Reactions outside the guild's voting channel, on other
// messages, or from bots are ignored.
func (h *Handler) HandleReaction(ctx context.Context, ev ReactionEvent) error {
	if ev.IsBot {
		return nil
	}

	server, err := h.Directory.ServerByGuildID(ctx, ev.GuildID)
	if err != nil {
		return fmt.Errorf("resolve guild %s: %w", ev.GuildID, err)
	}
	if server == nil {
		return nil
	}
	if server.VoteChannelID == "" {
		return fmt.Errorf("guild %s has no voting channel: %w", ev.GuildID, ErrConfiguration)
	}
	if ev.ChannelID != server.VoteChannelID {
		return nil
	}

	msg, err := h.Gateway.FetchMessage(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		if shareddiscord.IsUnknownMessage(err) {
			log.Printf("proposals: warning: message %s vanished before the vote was read", ev.MessageID)
			return nil
		}
		return fmt.Errorf("fetch voting message %s: %w", ev.MessageID, err)
	}
	parsed, ok := ParsePublished(msg)
	if !ok {
		return nil
	}

	if server.ResultChannelID == "" {
		return fmt.Errorf("guild %s has no results channel: %w", ev.GuildID, ErrConfiguration)
	}
	if server.Community == nil {
		return fmt.Errorf("guild %s: %w", ev.GuildID, ErrCommunityNotLinked)
	}

	proposal, err := h.resolveProposal(ctx, ev.MessageID, parsed, server.Community.ID)
	if err != nil {
		return err
	}
	if proposal == nil {
		log.Printf("proposals: critical: vote on message %s has no persisted proposal (subject %q, format %q, community %d)",
			ev.MessageID, parsed.Subject, parsed.Format, server.Community.ID)
		return nil
	}

	if axis, choice, ok := Classify(ev.Emoji); ok {
		h.recordVote(ctx, proposal.ID, ev.UserID, axis, choice)
	}

	if proposal.Status != community.StatusInProgress {
		return nil
	}

	counts, err := h.countReactions(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		if shareddiscord.IsUnknownMessage(err) {
			log.Printf("proposals: warning: message %s deleted while counting votes, probably finalized by a concurrent vote", ev.MessageID)
			return nil
		}
		return err
	}

	outcome := Decide(counts, h.Config.VotesRequired)
	if outcome == OutcomeNone {
		return nil
	}

	subject, format := parsed.Subject, parsed.Format
	if subject == "" {
		subject = proposal.Title
	}
	if format == "" {
		format = proposal.Format
	}

	_, err = h.Finalizer.Finalize(ctx, Finalization{
		ProposalID:      proposal.ID,
		Outcome:         outcome,
		Subject:         subject,
		Format:          format,
		ResultChannelID: server.ResultChannelID,
		VoteChannelID:   ev.ChannelID,
		VoteMessageID:   ev.MessageID,
	})
	return err
}

// resolveProposal finds the proposal behind a voting message: by the stored
// message link first, then the id in the embed footer, then the labelled text.
func (h *Handler) resolveProposal(ctx context.Context, messageID string, parsed Published, communityID uint64) (*community.Proposal, error) {
	proposal, err := data.FindProposalByVotingMessage(ctx, h.DB, messageID)
	if err != nil {
		return nil, fmt.Errorf("find proposal by message: %w", err)
	}
	if proposal != nil {
		return proposal, nil
	}

	if parsed.ProposalID != 0 {
		proposal, err = data.GetProposal(ctx, h.DB, parsed.ProposalID)
		if err != nil {
			return nil, fmt.Errorf("get proposal %d: %w", parsed.ProposalID, err)
		}
		if proposal != nil && proposal.CommunityID == communityID {
			return proposal, nil
		}
	}

	proposal, err = data.FindProposalByContent(ctx, h.DB, parsed.Subject, parsed.Format, communityID)
	if err != nil {
		return nil, fmt.Errorf("find proposal by content: %w", err)
	}
	return proposal, nil
}

// recordVote writes the reactor's opinion to the ledger. Failures are logged; the
// tally is read from live reactions and does not depend on the ledger.
func (h *Handler) recordVote(ctx context.Context, proposalID uint64, discordID string, axis data.Axis, choice community.VoteChoice) {
	voter, err := h.Directory.UserByDiscordID(ctx, discordID)
	if err != nil {
		log.Printf("proposals: resolve voter %s: %v", discordID, err)
		return
	}
	if voter == nil {
		log.Printf("proposals: voter %s has no platform account, vote on proposal %d not recorded", discordID, proposalID)
		return
	}
	if err := data.UpsertVote(ctx, h.DB, proposalID, voter.ID, axis, choice); err != nil {
		log.Printf("proposals: record vote of user %d on proposal %d: %v", voter.ID, proposalID, err)
	}
}

func (h *Handler) countReactions(ctx context.Context, channelID, messageID string) (Counts, error) {
	var counts Counts
	targets := []struct {
		emoji string
		dst   *int
	}{
		{EmojiSubjectFor, &counts.SubjectFor},
		{EmojiSubjectAgainst, &counts.SubjectAgainst},
		{EmojiFormatFor, &counts.FormatFor},
		{EmojiFormatAgainst, &counts.FormatAgainst},
	}
	for _, t := range targets {
		users, err := h.Gateway.Reactors(ctx, channelID, messageID, t.emoji)
		if err != nil {
			return Counts{}, err
		}
		*t.dst = len(users)
	}
	return counts, nil
}
