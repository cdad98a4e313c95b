package data

import (
	"context"
	"testing"

	shareddata "github.com/snowledge/proposals/src/data"
	"github.com/snowledge/proposals/src/shared/community"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

func TestMySQL_DedupAndVoteUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	ctr, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("proposals"),
		tcmysql.WithUsername("proposals"),
		tcmysql.WithPassword("proposals"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	db, err := shareddata.ConnectMySQL(dsn)
	require.NoError(t, err)
	require.NoError(t, community.Migrate(db))

	c := community.Community{Slug: "snow", Name: "Snow"}
	require.NoError(t, db.Create(&c).Error)
	submitter := community.User{DiscordID: "100"}
	voter := community.User{DiscordID: "200"}
	require.NoError(t, db.Create(&submitter).Error)
	require.NoError(t, db.Create(&voter).Error)

	p, created, err := FindOrCreateProposal(ctx, db, newProposalInput(submitter.ID, c.ID))
	require.NoError(t, err)
	assert.True(t, created)
	again, created, err := FindOrCreateProposal(ctx, db, newProposalInput(submitter.ID, c.ID))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceFor))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisFormat, community.ChoiceAgainst))
	require.NoError(t, UpsertVote(ctx, db, p.ID, voter.ID, AxisSubject, community.ChoiceAgainst))

	sum, err := SummarizeVotes(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, VoteSummary{Voters: 1, SubjectAgainst: 1, FormatAgainst: 1}, sum)

	ok, err := TransitionStatus(ctx, db, p.ID, community.StatusRejected)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = TransitionStatus(ctx, db, p.ID, community.StatusAccepted)
	require.NoError(t, err)
	assert.False(t, ok)
}
