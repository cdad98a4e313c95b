package proposals

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/golang/mock/gomock"
	"github.com/snowledge/proposals/src/actions/proposals/data"
	"github.com/snowledge/proposals/src/actions/proposals/mocks"
	sharedconfig "github.com/snowledge/proposals/src/config"
	"github.com/snowledge/proposals/src/data/locks"
	"github.com/snowledge/proposals/src/data/pending"
	"github.com/snowledge/proposals/src/shared/community"
	"github.com/snowledge/proposals/src/shared/community/communitytest"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testGuildID   = "guild-1"
	testVoteCh    = "vote-ch"
	testResultCh  = "result-ch"
	testMessageID = "msg-1"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	gw     *mocks.MockGateway
	store  *pending.MemoryStore
	locker *locks.MemoryLocker
	cfg    *sharedconfig.ProposalsConfig
	guild  communitytest.Guild
	h      *Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	db := communitytest.NewDB(t)
	cfg := &sharedconfig.ProposalsConfig{
		VotesRequired:  1,
		ReviewWindow:   5 * 24 * time.Hour,
		PendingTTL:     time.Hour,
		PendingBackend: sharedconfig.PendingMemory,
		Formats:        []string{"Whitepaper", "Masterclass"},
		Enabled:        true,
	}
	gw := mocks.NewMockGateway(ctrl)
	store := pending.NewMemoryStore(cfg.PendingTTL)
	locker := locks.NewMemoryLocker()

	h := NewHandler(cfg, db, gw, store, NewFinalizer(db, gw, locker))
	h.Now = func() time.Time { return testNow }

	return &fixture{
		db:     db,
		gw:     gw,
		store:  store,
		locker: locker,
		cfg:    cfg,
		guild:  communitytest.SeedGuild(t, db, testGuildID, testVoteCh, testResultCh),
		h:      h,
	}
}

// seedPublished stores an in_progress proposal linked to testMessageID and returns
// the voting message Discord would hand back for it.
func (f *fixture) seedPublished(t *testing.T, submitter community.User, subject, format string) (*community.Proposal, *discordgo.Message) {
	t.Helper()
	ctx := context.Background()

	p, _, err := data.FindOrCreateProposal(ctx, f.db, data.NewProposal{
		Title:       subject,
		Description: "description of " + subject,
		Format:      format,
		SubmitterID: submitter.ID,
		CommunityID: f.guild.Community.ID,
		EndDate:     testNow.Add(f.cfg.ReviewWindow),
	})
	require.NoError(t, err)
	require.NoError(t, data.SetVotingMessage(ctx, f.db, p.ID, testVoteCh, testMessageID))

	send := BuildPublished(Published{
		ProposalID:  p.ID,
		SubmitterID: submitter.DiscordID,
		Subject:     subject,
		Description: p.Description,
		Format:      format,
	})
	return p, &discordgo.Message{
		ID:        testMessageID,
		ChannelID: testVoteCh,
		Content:   send.Content,
		Embeds:    send.Embeds,
	}
}

func member(discordID string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: discordID, Username: "user-" + discordID}}
}

func modalInteraction(discordID, subject, description string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "modal-interaction",
		Type:    discordgo.InteractionModalSubmit,
		GuildID: testGuildID,
		Member:  member(discordID),
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: DetailsModalID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: SubjectInputID, Value: subject},
				}},
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: DescriptionInputID, Value: description},
				}},
			},
		},
	}
}

func selectInteraction(discordID, customID string, values ...string) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:      "select-interaction",
		Type:    discordgo.InteractionMessageComponent,
		GuildID: testGuildID,
		Member:  member(discordID),
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.SelectMenuComponent,
			Values:        values,
		},
	}
}

func unknownMessageErr() error {
	return &discordgo.RESTError{
		Response:     &http.Response{Status: "404 Not Found", StatusCode: http.StatusNotFound},
		ResponseBody: []byte(`{"message": "Unknown Message", "code": 10008}`),
		Message:      &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage, Message: "Unknown Message"},
	}
}

func users(ids ...string) []*discordgo.User {
	out := make([]*discordgo.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, &discordgo.User{ID: id})
	}
	return out
}

// expectReactors stubs the live reactor lists, keyed by emoji.
func (f *fixture) expectReactors(reactors map[string][]*discordgo.User) {
	for _, emoji := range VoteEmojis {
		f.gw.EXPECT().
			Reactors(gomock.Any(), testVoteCh, testMessageID, emoji).
			Return(reactors[emoji], nil)
	}
}

func proposalCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&community.Proposal{}).Count(&n).Error)
	return n
}

func reloadProposal(t *testing.T, db *gorm.DB, id uint64) *community.Proposal {
	t.Helper()
	p, err := data.GetProposal(context.Background(), db, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}
