package proposals

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

//go:generate mockgen -destination=mocks/gateway.go -package=mocks github.com/snowledge/proposals/src/actions/proposals Gateway

// Gateway is the subset of the Discord REST surface the proposal engine uses.
type Gateway interface {
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	FetchMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error)
	SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	PinMessage(ctx context.Context, channelID, messageID string) error
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	// Reactors returns every non-bot user who reacted with emoji.
	Reactors(ctx context.Context, channelID, messageID, emoji string) ([]*discordgo.User, error)
	Respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse(ctx context.Context, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
	Followup(ctx context.Context, i *discordgo.Interaction, params *discordgo.WebhookParams) error
}

const reactorsPageSize = 100

type sessionGateway struct {
	s *discordgo.Session
}

// NewSessionGateway adapts a discordgo session to Gateway.
func NewSessionGateway(s *discordgo.Session) Gateway {
	return &sessionGateway{s: s}
}

func (g *sessionGateway) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if ch, err := g.s.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return g.s.Channel(channelID, discordgo.WithContext(ctx))
}

func (g *sessionGateway) FetchMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	return g.s.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
}

func (g *sessionGateway) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	return g.s.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
}

func (g *sessionGateway) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return g.s.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

func (g *sessionGateway) PinMessage(ctx context.Context, channelID, messageID string) error {
	return g.s.ChannelMessagePin(channelID, messageID, discordgo.WithContext(ctx))
}

func (g *sessionGateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return g.s.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func (g *sessionGateway) Reactors(ctx context.Context, channelID, messageID, emoji string) ([]*discordgo.User, error) {
	var (
		out     []*discordgo.User
		afterID string
	)
	for {
		page, err := g.s.MessageReactions(channelID, messageID, emoji, reactorsPageSize, "", afterID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch %s reactors: %w", emoji, err)
		}
		for _, u := range page {
			if u != nil && !u.Bot {
				out = append(out, u)
			}
		}
		if len(page) < reactorsPageSize {
			return out, nil
		}
		afterID = page[len(page)-1].ID
	}
}

func (g *sessionGateway) Respond(ctx context.Context, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return g.s.InteractionRespond(i, resp, discordgo.WithContext(ctx))
}

func (g *sessionGateway) EditResponse(ctx context.Context, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
	_, err := g.s.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx))
	return err
}

func (g *sessionGateway) Followup(ctx context.Context, i *discordgo.Interaction, params *discordgo.WebhookParams) error {
	_, err := g.s.FollowupMessageCreate(i, true, params, discordgo.WithContext(ctx))
	return err
}
