package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/snowledge/proposals/src/shared/community"
	"github.com/snowledge/proposals/src/shared/community/communitytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProposalInput(submitterID, communityID uint64) NewProposal {
	return NewProposal{
		Title:       "X",
		Description: "Y",
		Format:      "Whitepaper",
		SubmitterID: submitterID,
		CommunityID: communityID,
		EndDate:     time.Now().Add(5 * 24 * time.Hour),
	}
}

func TestDedupKey(t *testing.T) {
	a := DedupKey("X", "Whitepaper", 1, 2)
	assert.Len(t, a, 16)
	assert.Equal(t, a, DedupKey("X", "Whitepaper", 1, 2))
	assert.NotEqual(t, a, DedupKey("X", "Masterclass", 1, 2))
	assert.NotEqual(t, a, DedupKey("X", "Whitepaper", 2, 2))
	assert.NotEqual(t, a, DedupKey("X", "Whitepaper", 1, 3))
	assert.NotEqual(t, DedupKey("ab", "c", 1, 2), DedupKey("a", "bc", 1, 2))
}

func TestFindOrCreateProposal_CreatesOnce(t *testing.T) {
	db := communitytest.NewDB(t)
	ctx := context.Background()
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	u := communitytest.SeedUser(t, db, "100")

	p, created, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, community.StatusInProgress, p.Status)

	again, created, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&community.Proposal{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateProposal_ConcurrentSubmissions(t *testing.T) {
	db := communitytest.NewDB(t)
	ctx := context.Background()
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	u := communitytest.SeedUser(t, db, "100")

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[uint64]struct{}{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, _, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[p.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	var count int64
	require.NoError(t, db.Model(&community.Proposal{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindProposalLookups(t *testing.T) {
	db := communitytest.NewDB(t)
	ctx := context.Background()
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	u := communitytest.SeedUser(t, db, "100")

	p, _, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
	require.NoError(t, err)
	require.NoError(t, SetVotingMessage(ctx, db, p.ID, "votes", "m-1"))

	byMsg, err := FindProposalByVotingMessage(ctx, db, "m-1")
	require.NoError(t, err)
	require.NotNil(t, byMsg)
	assert.Equal(t, p.ID, byMsg.ID)
	assert.Equal(t, "votes", byMsg.VotingChannelID)

	missing, err := FindProposalByVotingMessage(ctx, db, "m-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byContent, err := FindProposalByContent(ctx, db, "X", "Whitepaper", g.Community.ID)
	require.NoError(t, err)
	require.NotNil(t, byContent)
	assert.Equal(t, p.ID, byContent.ID)

	missing, err = FindProposalByContent(ctx, db, "X", "Masterclass", g.Community.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	full, err := GetProposal(ctx, db, p.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Submitter)
	assert.Equal(t, "100", full.Submitter.DiscordID)
}

func TestTransitionStatus_ExactlyOnce(t *testing.T) {
	db := communitytest.NewDB(t)
	ctx := context.Background()
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	u := communitytest.SeedUser(t, db, "100")
	p, _, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
	require.NoError(t, err)

	ok, err := TransitionStatus(ctx, db, p.ID, community.StatusAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TransitionStatus(ctx, db, p.ID, community.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	status, err := GetProposalStatus(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, community.StatusAccepted, status)
}

func TestListProposals(t *testing.T) {
	db := communitytest.NewDB(t)
	ctx := context.Background()
	g := communitytest.SeedGuild(t, db, "g1", "votes", "results")
	u := communitytest.SeedUser(t, db, "100")

	first, _, err := FindOrCreateProposal(ctx, db, newProposalInput(u.ID, g.Community.ID))
	require.NoError(t, err)
	in := newProposalInput(u.ID, g.Community.ID)
	in.Format = "Masterclass"
	_, _, err = FindOrCreateProposal(ctx, db, in)
	require.NoError(t, err)
	_, err = TransitionStatus(ctx, db, first.ID, community.StatusRejected)
	require.NoError(t, err)

	all, err := ListProposals(ctx, db, g.Community.ID, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rejected, err := ListProposals(ctx, db, g.Community.ID, community.StatusRejected, 10)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, first.ID, rejected[0].ID)
}
