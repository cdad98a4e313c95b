package proposals

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/snowledge/proposals/src/actions/proposals/data"
	"github.com/snowledge/proposals/src/data/pending"
	shareddiscord "github.com/snowledge/proposals/src/discord"
	"github.com/snowledge/proposals/src/shared/community"
)

// HandleSubmitButton opens the details modal.
func (h *Handler) HandleSubmitButton(ctx context.Context, i *discordgo.Interaction) error {
	return h.Gateway.Respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: detailsModal(),
	})
}

// HandleDetails stores the submitted subject and description under a fresh
// pending id and asks for the format.
func (h *Handler) HandleDetails(ctx context.Context, i *discordgo.Interaction) error {
	values := modalValues(i.ModalSubmitData())
	subject := h.sanitizeSubject(values[SubjectInputID])
	description := h.sanitizeDescription(values[DescriptionInputID])
	if subject == "" || description == "" {
		return h.Gateway.Respond(ctx, i, ephemeral("Error: a subject and a description are required."))
	}

	entry := &pending.Proposal{
		ID:          uuid.NewString(),
		Subject:     subject,
		Description: description,
	}
	if err := h.Pending.Put(ctx, entry); err != nil {
		return fmt.Errorf("store pending proposal: %w", err)
	}

	if err := h.Gateway.Respond(ctx, i, ephemeral(
		"Select the format for your proposal:",
		formatSelect(entry.ID, h.Config.Formats),
	)); err != nil {
		// Nobody ever saw the pending id.
		if derr := h.Pending.Delete(ctx, entry.ID); derr != nil {
			log.Printf("proposals: drop pending proposal %s: %v", entry.ID, derr)
		}
		return err
	}
	return nil
}

// HandleFormat records the chosen format and asks whether the submitter wants to
// contribute.
func (h *Handler) HandleFormat(ctx context.Context, i *discordgo.Interaction, pendingID string) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 || !slices.Contains(h.Config.Formats, values[0]) {
		return h.Gateway.Respond(ctx, i, ephemeral("Error: unknown format."))
	}
	format := values[0]

	if _, err := h.Pending.SetFormat(ctx, pendingID, format); err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			log.Printf("proposals: format selected for unknown pending id %q", pendingID)
			return h.Gateway.Respond(ctx, i, ephemeral(proposalNotFoundMessage))
		}
		return fmt.Errorf("set pending format: %w", err)
	}

	return h.Gateway.Respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("✅ Format selected: **%s**\n\nDo you want to be a contributor for this idea?", format),
			Components: []discordgo.MessageComponent{contributorSelect(pendingID)},
		},
	})
}

// HandleContributor completes the wizard: the pending entry is consumed, the
// proposal persisted and published for voting. Nothing is published unless the
// submitter and the guild's community resolve.
func (h *Handler) HandleContributor(ctx context.Context, i *discordgo.Interaction, pendingID string) error {
	if err := h.Gateway.Respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		return fmt.Errorf("defer contributor response: %w", err)
	}

	values := i.MessageComponentData().Values
	contributor := len(values) > 0 && values[0] == ContributorYes

	entry, err := h.Pending.Get(ctx, pendingID)
	if err == nil && entry.Format == "" {
		return h.followupError(ctx, i, "Error: choose a format first.")
	}
	if err == nil {
		entry, err = h.Pending.Take(ctx, pendingID)
	}
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			log.Printf("proposals: contributor selected for unknown pending id %q", pendingID)
			return h.followupError(ctx, i, proposalNotFoundMessage)
		}
		return fmt.Errorf("take pending proposal: %w", err)
	}

	discordUser := interactionUser(i)
	if discordUser == nil {
		return fmt.Errorf("interaction %s has no user", i.ID)
	}

	submitter, err := h.Directory.UserByDiscordID(ctx, discordUser.ID)
	if err != nil {
		return fmt.Errorf("resolve submitter: %w", err)
	}
	if submitter == nil {
		log.Printf("proposals: warning: discord user %s has no platform account, proposal %q not published", discordUser.ID, entry.Subject)
		h.bestEffortEdit(ctx, i, "⚠️ Your Discord account is not linked to a platform account, so your proposal could not be submitted. Link your account and try again.")
		return fmt.Errorf("submitter %s: %w", discordUser.ID, ErrUserNotLinked)
	}

	server, err := h.Directory.ServerByGuildID(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("resolve guild %s: %w", i.GuildID, err)
	}
	if server == nil || server.Community == nil {
		log.Printf("proposals: warning: guild %s is not linked to a community, proposal %q not published", i.GuildID, entry.Subject)
		h.bestEffortEdit(ctx, i, "⚠️ This server is not linked to a community yet, so proposals cannot be submitted.")
		return fmt.Errorf("guild %s: %w", i.GuildID, ErrCommunityNotLinked)
	}
	if server.VoteChannelID == "" {
		h.bestEffortEdit(ctx, i, "⚠️ The voting channel is not configured for this server.")
		return fmt.Errorf("guild %s has no voting channel: %w", i.GuildID, ErrConfiguration)
	}

	proposal, created, err := data.FindOrCreateProposal(ctx, h.DB, data.NewProposal{
		Title:         entry.Subject,
		Description:   entry.Description,
		Format:        entry.Format,
		IsContributor: contributor,
		SubmitterID:   submitter.ID,
		CommunityID:   server.Community.ID,
		EndDate:       h.now().Add(h.Config.ReviewWindow),
	})
	if err != nil {
		h.bestEffortEdit(ctx, i, "❌ Your proposal could not be saved, please try again later.")
		return fmt.Errorf("persist proposal: %w", err)
	}
	if !created {
		log.Printf("proposals: duplicate submission of proposal %d by %s", proposal.ID, discordUser.ID)
	}

	if err := h.publishOnce(ctx, server, proposal.ID, discordUser.ID); err != nil {
		h.bestEffortEdit(ctx, i, "❌ Your proposal was saved but could not be published for voting.")
		return err
	}

	h.bestEffortEdit(ctx, i, "✅ Your proposal has been sent for voting!")
	return nil
}

// publishOnce publishes the proposal unless a concurrent duplicate submission
// already did. The row is re-read under the proposal lock.
func (h *Handler) publishOnce(ctx context.Context, server *community.DiscordServer, proposalID uint64, submitterDiscordID string) error {
	unlock, err := h.Finalizer.locker.Lock(ctx, lockKey(proposalID))
	if err != nil {
		return fmt.Errorf("lock proposal %d: %w", proposalID, err)
	}
	defer unlock()

	proposal, err := data.GetProposal(ctx, h.DB, proposalID)
	if err != nil {
		return fmt.Errorf("reload proposal %d: %w", proposalID, err)
	}
	if proposal == nil {
		return fmt.Errorf("proposal %d vanished before publishing", proposalID)
	}
	if proposal.VotingMessageID != "" {
		return nil
	}
	return h.publish(ctx, server, proposal, submitterDiscordID)
}

// publish posts the voting message, adds the vote reactions and links the message
// to the proposal.
func (h *Handler) publish(ctx context.Context, server *community.DiscordServer, proposal *community.Proposal, submitterDiscordID string) error {
	ch, err := h.Gateway.Channel(ctx, server.VoteChannelID)
	if err != nil {
		return fmt.Errorf("resolve voting channel %s: %v: %w", server.VoteChannelID, err, ErrConfiguration)
	}
	if ch.Type != discordgo.ChannelTypeGuildText {
		return fmt.Errorf("voting channel %s is not a text channel: %w", server.VoteChannelID, ErrConfiguration)
	}

	msg, err := h.Gateway.SendMessage(ctx, ch.ID, BuildPublished(Published{
		ProposalID:  proposal.ID,
		SubmitterID: submitterDiscordID,
		Subject:     proposal.Title,
		Description: proposal.Description,
		Format:      proposal.Format,
		Contributor: proposal.IsContributor,
	}))
	if err != nil {
		return fmt.Errorf("send voting message: %w", err)
	}

	if err := data.SetVotingMessage(ctx, h.DB, proposal.ID, ch.ID, msg.ID); err != nil {
		return fmt.Errorf("link voting message: %w", err)
	}

	for _, emoji := range VoteEmojis {
		if err := h.Gateway.AddReaction(ctx, ch.ID, msg.ID, emoji); err != nil {
			log.Printf("proposals: add %s to message %s: %v", emoji, msg.ID, err)
		}
	}

	log.Printf("proposals: published proposal %d as message %s", proposal.ID, msg.ID)
	return nil
}

func (h *Handler) followupError(ctx context.Context, i *discordgo.Interaction, content string) error {
	if err := h.Gateway.Followup(ctx, i, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		return fmt.Errorf("send followup: %w", err)
	}
	return nil
}

// bestEffortEdit updates the wizard reply; the interaction token may have expired.
func (h *Handler) bestEffortEdit(ctx context.Context, i *discordgo.Interaction, content string) {
	err := h.editReply(ctx, i, content)
	switch {
	case err == nil:
	case shareddiscord.IsUnknownInteraction(err):
		log.Printf("proposals: debug: interaction %s expired before the reply could be updated", i.ID)
	default:
		log.Printf("proposals: error: %v", err)
	}
}
