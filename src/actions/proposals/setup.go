package proposals

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func submitExplanation(voteChannelID string, formats []string) string {
	return "🎉 **Submit your ideas!**\n\n" +
		"To submit an idea:\n" +
		"1. Click the **📝 Submit an idea** button below.\n" +
		"2. Enter the subject of your idea and its description.\n" +
		"3. Select the desired format (**" + strings.Join(formats, "** or **") + "**).\n" +
		"4. Indicate if you want to be a contributor for this idea.\n\n" +
		"Your proposal will then be sent to the <#" + voteChannelID + "> channel for everyone to vote!"
}

func voteExplanation(votesRequired int) string {
	return fmt.Sprintf("🗳️ **Vote on community ideas!**\n\n"+
		"React to each proposal:\n"+
		"%s / %s to approve or reject the subject\n"+
		"%s / %s to approve or reject the format\n\n"+
		"A proposal is decided as soon as %d member(s) approve or reject its subject.",
		EmojiSubjectFor, EmojiSubjectAgainst, EmojiFormatFor, EmojiFormatAgainst, votesRequired)
}

const resultExplanation = "📣 **Proposal results**\n\nApproved and rejected proposals are announced here once the community has voted."

// HandleSetup answers /proposals-setup: it posts and pins the submission button in
// the propose channel and the instructions in the voting and results channels.
func (h *Handler) HandleSetup(ctx context.Context, i *discordgo.Interaction) error {
	if err := h.Gateway.Respond(ctx, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		return fmt.Errorf("defer setup response: %w", err)
	}

	server, err := h.Directory.ServerByGuildID(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("resolve guild %s: %w", i.GuildID, err)
	}
	if server == nil || server.ProposeChannelID == "" || server.VoteChannelID == "" || server.ResultChannelID == "" {
		h.bestEffortEdit(ctx, i, "⚠️ The propose, voting and results channels must be configured for this server before running setup.")
		return fmt.Errorf("guild %s channels not configured: %w", i.GuildID, ErrConfiguration)
	}

	posts := []struct {
		channelID string
		msg       *discordgo.MessageSend
	}{
		{server.ProposeChannelID, &discordgo.MessageSend{
			Content:    submitExplanation(server.VoteChannelID, h.Config.Formats),
			Components: []discordgo.MessageComponent{submitButton()},
		}},
		{server.VoteChannelID, &discordgo.MessageSend{Content: voteExplanation(h.Config.VotesRequired)}},
		{server.ResultChannelID, &discordgo.MessageSend{Content: resultExplanation}},
	}

	for _, p := range posts {
		sent, err := h.Gateway.SendMessage(ctx, p.channelID, p.msg)
		if err != nil {
			h.bestEffortEdit(ctx, i, fmt.Sprintf("❌ Could not post in <#%s>.", p.channelID))
			return fmt.Errorf("post setup message in %s: %w", p.channelID, err)
		}
		if err := h.Gateway.PinMessage(ctx, p.channelID, sent.ID); err != nil {
			log.Printf("proposals: pin setup message %s: %v", sent.ID, err)
		}
	}

	h.bestEffortEdit(ctx, i, fmt.Sprintf("✅ Proposals are set up: submit in <#%s>, vote in <#%s>, results in <#%s>.",
		server.ProposeChannelID, server.VoteChannelID, server.ResultChannelID))
	return nil
}
