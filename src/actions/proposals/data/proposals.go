package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewProposal carries the fields captured by the intake wizard.
type NewProposal struct {
	Title         string
	Description   string
	Format        string
	IsContributor bool
	SubmitterID   uint64
	CommunityID   uint64
	EndDate       time.Time
}

// DedupKey identifies the (title, format, submitter, community) tuple. Title is a
// text column, so uniqueness is enforced on this fixed-width digest instead.
func DedupKey(title, format string, submitterID, communityID uint64) string {
	h := xxhash.New64()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d", title, format, submitterID, communityID)
	return fmt.Sprintf("%016x", h.Sum64())
}

// FindOrCreateProposal returns the proposal matching the duplicate tuple, creating
// it when absent. created reports whether this call inserted the row. Concurrent
// callers with the same tuple all observe the same row.
func FindOrCreateProposal(ctx context.Context, db *gorm.DB, in NewProposal) (proposal *community.Proposal, created bool, err error) {
	key := DedupKey(in.Title, in.Format, in.SubmitterID, in.CommunityID)

	existing, err := findByDedupKey(ctx, db, key)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	p := community.Proposal{
		Title:         in.Title,
		Description:   in.Description,
		Format:        in.Format,
		IsContributor: in.IsContributor,
		Status:        community.StatusInProgress,
		SubmitterID:   in.SubmitterID,
		CommunityID:   in.CommunityID,
		EndDate:       in.EndDate,
		DedupKey:      key,
	}

	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&p)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &p, true, nil
	}

	// Lost the insert race to a concurrent submission.
	existing, err = findByDedupKey(ctx, db, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("proposal %s vanished after conflicting insert", key)
	}
	return existing, false, nil
}

func findByDedupKey(ctx context.Context, db *gorm.DB, key string) (*community.Proposal, error) {
	var p community.Proposal
	err := db.WithContext(ctx).Where("dedup_key = ?", key).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProposal loads a proposal by id, or nil when it does not exist.
func GetProposal(ctx context.Context, db *gorm.DB, id uint64) (*community.Proposal, error) {
	var p community.Proposal
	err := db.WithContext(ctx).Preload("Submitter").Preload("Community").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProposalByVotingMessage resolves the proposal published as messageID.
func FindProposalByVotingMessage(ctx context.Context, db *gorm.DB, messageID string) (*community.Proposal, error) {
	if messageID == "" {
		return nil, nil
	}

	var p community.Proposal
	err := db.WithContext(ctx).Where("voting_message_id = ?", messageID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProposalByContent matches on (title, format, community), the only keys a
// plain-text voting message carries.
func FindProposalByContent(ctx context.Context, db *gorm.DB, title, format string, communityID uint64) (*community.Proposal, error) {
	var p community.Proposal
	err := db.WithContext(ctx).
		Where("title = ? AND format = ? AND community_id = ?", title, format, communityID).
		Order("id ASC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProposals returns a community's proposals, newest first. An empty status
// matches every status.
func ListProposals(ctx context.Context, db *gorm.DB, communityID uint64, status community.ProposalStatus, limit int) ([]community.Proposal, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := db.WithContext(ctx).Where("community_id = ?", communityID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []community.Proposal
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetVotingMessage links a proposal to its published voting message.
func SetVotingMessage(ctx context.Context, db *gorm.DB, proposalID uint64, channelID, messageID string) error {
	return db.WithContext(ctx).Model(&community.Proposal{}).
		Where("id = ?", proposalID).
		Updates(map[string]interface{}{
			"voting_channel_id": channelID,
			"voting_message_id": messageID,
		}).Error
}

// TransitionStatus moves a proposal out of in_progress. It reports false when the
// proposal had already left in_progress, so the transition happens exactly once.
func TransitionStatus(ctx context.Context, db *gorm.DB, proposalID uint64, to community.ProposalStatus) (bool, error) {
	res := db.WithContext(ctx).Model(&community.Proposal{}).
		Where("id = ? AND status = ?", proposalID, community.StatusInProgress).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetProposalStatus reads the current status without loading associations.
func GetProposalStatus(ctx context.Context, db *gorm.DB, proposalID uint64) (community.ProposalStatus, error) {
	var p community.Proposal
	if err := db.WithContext(ctx).Select("id", "status").First(&p, proposalID).Error; err != nil {
		return "", err
	}
	return p.Status, nil
}
