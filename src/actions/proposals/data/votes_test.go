package data

import (
	"context"
	"testing"

	"github.com/snowledge/proposals/src/shared/community"
	"github.com/snowledge/proposals/src/shared/community/communitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVoteFixture(t *testing.T) (*gorm.DB, *community.Proposal, community.User) {
	t.Helper()
	db := communitytest.NewDB(t)
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	submitter := communitytest.SeedUser(t, db, "100")
	voter := communitytest.SeedUser(t, db, "200")

	p, _, err := FindOrCreateProposal(context.Background(), db, newProposalInput(submitter.ID, g.Community.ID))
	require.NoError(t, err)
	return db, p, voter
}

func countVotes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&community.Vote{}).Count(&n).Error)
	return n
}

func TestUpsertVote_SameSymbolTwice(t *testing.T) {
	db, p, voter := setupVoteFixture(t)
	ctx := context.Background()

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))

	assert.Equal(t, int64(1), countVotes(t, db))
	v, err := GetVote(ctx, db, p.ID, voter.ID)
	require.NoError(t, err)
	require.NotNil(t, v.Choice)
	assert.Equal(t, community.ChoiceFor, *v.Choice)
	assert.Nil(t, v.FormatChoice)
}

func TestUpsertVote_ChangeOfMindUpdatesInPlace(t *testing.T) {
	db, p, voter := setupVoteFixture(t)
	ctx := context.Background()

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceAgainst))

	assert.Equal(t, int64(1), countVotes(t, db))
	v, err := GetVote(ctx, db, p.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, community.ChoiceAgainst, *v.Choice)
}

func TestUpsertVote_AxesAreIndependent(t *testing.T) {
	db, p, voter := setupVoteFixture(t)
	ctx := context.Background()

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceAgainst))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisFormat, community.ChoiceFor))

	v, err := GetVote(ctx, db, p.ID, voter.ID)
	require.NoError(t, err)
	require.NotNil(t, v.Choice)
	require.NotNil(t, v.FormatChoice)
	assert.Equal(t, community.ChoiceAgainst, *v.Choice)
	assert.Equal(t, community.ChoiceFor, *v.FormatChoice)

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))
	v, err = GetVote(ctx, db, p.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, community.ChoiceFor, *v.Choice)
	assert.Equal(t, community.ChoiceFor, *v.FormatChoice)
	assert.Equal(t, int64(1), countVotes(t, db))
}

func TestUpsertVote_UnknownAxis(t *testing.T) {
	db, p, voter := setupVoteFixture(t)
	err := UpsertVote(context.Background(), db, p.ID, voter.ID, Axis("colour"), community.ChoiceFor)
	assert.Error(t, err)
	assert.Equal(t, int64(0), countVotes(t, db))
}

func TestSummarizeVotes(t *testing.T) {
	db, p, voter := setupVoteFixture(t)
	ctx := context.Background()
	other := communitytest.SeedUser(t, db, "300")

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisFormat, community.ChoiceAgainst))
	require.NoError(t, UpsertVote(ctx, db, p.ID, other.ID, AxisSubject, community.ChoiceFor))

	sum, err := SummarizeVotes(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, VoteSummary{Voters: 2, SubjectFor: 2, FormatAgainst: 1}, sum)
}
