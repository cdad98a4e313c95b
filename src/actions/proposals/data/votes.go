package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Axis is one of the two independent vote dimensions.
type Axis string

const (
	AxisSubject Axis = "subject"
	AxisFormat  Axis = "format"
)

func (a Axis) column() (string, error) {
	switch a {
	case AxisSubject:
		return "choice", nil
	case AxisFormat:
		return "format_choice", nil
	}
	return "", fmt.Errorf("unknown vote axis %q", a)
}

// UpsertVote records a voter's choice on one axis. The (proposal, voter) row is
// created on first vote; later votes overwrite only the given axis.
func UpsertVote(ctx context.Context, db *gorm.DB, proposalID, userID uint64, axis Axis, choice community.VoteChoice) error {
	column, err := axis.column()
	if err != nil {
		return err
	}

	vote := community.Vote{ProposalID: proposalID, UserID: userID}
	c := choice
	switch axis {
	case AxisSubject:
		vote.Choice = &c
	case AxisFormat:
		vote.FormatChoice = &c
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "proposal_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&vote).Error
}

// GetVote returns the ledger row for (proposal, voter), or nil.
func GetVote(ctx context.Context, db *gorm.DB, proposalID, userID uint64) (*community.Vote, error) {
	var v community.Vote
	err := db.WithContext(ctx).Where("proposal_id = ? AND user_id = ?", proposalID, userID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// VoteSummary aggregates ledger rows per axis.
type VoteSummary struct {
	Voters         int64 `json:"voters"`
	SubjectFor     int64 `json:"subjectFor"`
	SubjectAgainst int64 `json:"subjectAgainst"`
	FormatFor      int64 `json:"formatFor"`
	FormatAgainst  int64 `json:"formatAgainst"`
}

// SummarizeVotes counts ledger rows for a proposal. This reflects recorded votes;
// finalization counts live reactions instead.
func SummarizeVotes(ctx context.Context, db *gorm.DB, proposalID uint64) (VoteSummary, error) {
	var out VoteSummary
	err := db.WithContext(ctx).Model(&community.Vote{}).
		Select(
			"COUNT(*) AS voters, "+
				"COALESCE(SUM(CASE WHEN choice = ? THEN 1 ELSE 0 END), 0) AS subject_for, "+
				"COALESCE(SUM(CASE WHEN choice = ? THEN 1 ELSE 0 END), 0) AS subject_against, "+
				"COALESCE(SUM(CASE WHEN format_choice = ? THEN 1 ELSE 0 END), 0) AS format_for, "+
				"COALESCE(SUM(CASE WHEN format_choice = ? THEN 1 ELSE 0 END), 0) AS format_against",
			community.ChoiceFor, community.ChoiceAgainst, community.ChoiceFor, community.ChoiceAgainst,
		).
		Where("proposal_id = ?", proposalID).
		Scan(&out).Error
	return out, err
}
