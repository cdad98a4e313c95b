package proposals

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/microcosm-cc/bluemonday"
	sharedconfig "github.com/snowledge/proposals/src/config"
	"github.com/snowledge/proposals/src/data/pending"
	shareddiscord "github.com/snowledge/proposals/src/discord"
	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
)

var (
	// ErrConfiguration reports a guild whose proposal channels or community are
	// not set up.
	ErrConfiguration = errors.New("proposals: guild configuration incomplete")
	// ErrUserNotLinked reports a Discord account with no platform user.
	ErrUserNotLinked = errors.New("proposals: discord account not linked to a user")
	// ErrCommunityNotLinked reports a guild with no community.
	ErrCommunityNotLinked = errors.New("proposals: guild not linked to a community")
)

const proposalNotFoundMessage = "Error: proposal not found."

// Handler runs the intake wizard and the vote tally.
type Handler struct {
	Config    *sharedconfig.ProposalsConfig
	DB        *gorm.DB
	Gateway   Gateway
	Pending   pending.Store
	Directory *community.Directory
	Finalizer *Finalizer
	Now       func() time.Time

	sanitizer *bluemonday.Policy
}

// NewHandler wires a handler over its collaborators.
func NewHandler(cfg *sharedconfig.ProposalsConfig, db *gorm.DB, gw Gateway, store pending.Store, finalizer *Finalizer) *Handler {
	return &Handler{
		Config:    cfg,
		DB:        db,
		Gateway:   gw,
		Pending:   store,
		Directory: community.NewDirectory(db),
		Finalizer: finalizer,
		Now:       time.Now,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// HandleInteraction routes an interaction to the wizard step or command it
// belongs to. Interactions owned by other features are ignored.
func (h *Handler) HandleInteraction(ctx context.Context, i *discordgo.Interaction) error {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == shareddiscord.CommandProposalsSetup {
			return h.HandleSetup(ctx, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == DetailsModalID {
			return h.HandleDetails(ctx, i)
		}
	case discordgo.InteractionMessageComponent:
		prefix, pendingID := splitCustomID(i.MessageComponentData().CustomID)
		switch prefix {
		case SubmitButtonID:
			return h.HandleSubmitButton(ctx, i)
		case FormatSelectPrefix:
			return h.HandleFormat(ctx, i, pendingID)
		case ContributorSelectPrefix:
			return h.HandleContributor(ctx, i, pendingID)
		}
	}
	return nil
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) policy() *bluemonday.Policy {
	if h.sanitizer == nil {
		h.sanitizer = bluemonday.StrictPolicy()
	}
	return h.sanitizer
}

// sanitizeSubject strips markup and folds the subject onto one line, which keeps
// the labelled voting message parseable.
func (h *Handler) sanitizeSubject(raw string) string {
	clean := html.UnescapeString(h.policy().Sanitize(raw))
	return strings.Join(strings.Fields(clean), " ")
}

func (h *Handler) sanitizeDescription(raw string) string {
	return strings.TrimSpace(html.UnescapeString(h.policy().Sanitize(raw)))
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func ephemeral(content string, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	}
}

func (h *Handler) editReply(ctx context.Context, i *discordgo.Interaction, content string) error {
	components := []discordgo.MessageComponent{}
	if err := h.Gateway.EditResponse(ctx, i, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	}); err != nil {
		return fmt.Errorf("edit interaction response: %w", err)
	}
	return nil
}
