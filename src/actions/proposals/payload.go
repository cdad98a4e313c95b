package proposals

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/snowledge/proposals/src/discord"
)

// PublishMarker starts every published voting message.
const PublishMarker = "📢 New idea proposed by"

// Vote reactions.
const (
	EmojiSubjectFor     = "✅"
	EmojiSubjectAgainst = "❌"
	EmojiFormatFor      = "👍"
	EmojiFormatAgainst  = "👎"
)

// VoteEmojis lists the reactions added to every voting message, in display order.
var VoteEmojis = []string{EmojiSubjectFor, EmojiSubjectAgainst, EmojiFormatFor, EmojiFormatAgainst}

const (
	labelSubject     = "**Subject** : "
	labelDescription = "**Description** : "
	labelFormat      = "**Format** : "
	labelContributor = "**Contributor** : "
	voteLegend       = "**Vote Subject** : ✅ = Yes | ❌ = No\n**Vote Format** : 👍 = Yes | 👎 = No"

	footerPrefix  = "Proposal #"
	proposalColor = 0x5865F2
)

var (
	mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)
	footerPattern  = regexp.MustCompile(`^Proposal #(\d+)$`)
)

// Published is the content of a voting message.
type Published struct {
	ProposalID  uint64
	SubmitterID string
	Subject     string
	Description string
	Format      string
	Contributor bool
}

// BuildPublished renders the voting message for p. The text body keeps the
// labelled layout members read; the embed footer carries the proposal id.
func BuildPublished(p Published) *discordgo.MessageSend {
	contributor := "No"
	if p.Contributor {
		contributor = "Yes"
	}

	render := func(description string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%s <@%s> :\n\n", PublishMarker, p.SubmitterID)
		b.WriteString(labelSubject + p.Subject + "\n")
		b.WriteString(labelDescription + description + "\n")
		b.WriteString(labelFormat + p.Format + "\n")
		b.WriteString(labelContributor + contributor + "\n\n")
		b.WriteString(voteLegend)
		return b.String()
	}

	description := shareddiscord.WrapURLsNoEmbed(p.Description)
	content := render(description)
	if over := len([]rune(content)) - shareddiscord.MaxDiscordMessageLen; over > 0 {
		keep := len([]rune(description)) - over
		if keep < 1 {
			keep = 1
		}
		content = render(shareddiscord.Truncate(description, keep))
	}

	msg := &discordgo.MessageSend{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{p.SubmitterID},
		},
	}
	if p.ProposalID != 0 {
		msg.Embeds = []*discordgo.MessageEmbed{{
			Title: shareddiscord.Truncate(p.Subject, 256),
			Color: proposalColor,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Format", Value: shareddiscord.Truncate(p.Format, shareddiscord.MaxEmbedFieldLen), Inline: true},
				{Name: "Contributor", Value: contributor, Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: footerPrefix + strconv.FormatUint(p.ProposalID, 10)},
		}}
	}
	return msg
}

// IsPublished reports whether content carries the voting message marker.
func IsPublished(content string) bool {
	return strings.HasPrefix(content, PublishMarker)
}

// ParsePublished recovers the proposal fields from a voting message. The proposal
// id comes from the embed footer when present; subject, format and submitter are
// read from the labelled lines. ok is false when msg is not a voting message or
// the subject line is missing.
func ParsePublished(msg *discordgo.Message) (p Published, ok bool) {
	if msg == nil || !IsPublished(msg.Content) {
		return Published{}, false
	}

	lines := strings.Split(msg.Content, "\n")
	if m := mentionPattern.FindStringSubmatch(lines[0]); m != nil {
		p.SubmitterID = m[1]
	}

	subjectFound := false
	for _, line := range lines[1:] {
		switch {
		case !subjectFound && strings.HasPrefix(line, labelSubject):
			p.Subject = strings.TrimSpace(strings.TrimPrefix(line, labelSubject))
			subjectFound = true
		case strings.HasPrefix(line, labelFormat):
			// The description may span several lines; the last format line wins.
			p.Format = strings.TrimSpace(strings.TrimPrefix(line, labelFormat))
		case strings.HasPrefix(line, labelContributor):
			p.Contributor = strings.TrimSpace(strings.TrimPrefix(line, labelContributor)) == "Yes"
		}
	}
	if !subjectFound {
		return Published{}, false
	}

	p.ProposalID = footerProposalID(msg.Embeds)
	return p, true
}

func footerProposalID(embeds []*discordgo.MessageEmbed) uint64 {
	for _, e := range embeds {
		if e == nil || e.Footer == nil {
			continue
		}
		m := footerPattern.FindStringSubmatch(strings.TrimSpace(e.Footer.Text))
		if m == nil {
			continue
		}
		if id, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func resultAnnouncement(o Outcome, subject, format string) string {
	if o == OutcomeAccepted {
		return fmt.Sprintf("✅ The following proposal has been **approved**:\n%s%s\n%s%s", labelSubject, subject, labelFormat, format)
	}
	return fmt.Sprintf("❌ The following proposal has been rejected:\n%s%s\n%s%s", labelSubject, subject, labelFormat, format)
}
