package proposals

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/snowledge/proposals/src/actions/proposals/data"
	"github.com/snowledge/proposals/src/data/locks"
	shareddiscord "github.com/snowledge/proposals/src/discord"
	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
)

// Finalization describes an outcome to apply to a proposal.
type Finalization struct {
	ProposalID      uint64
	Outcome         Outcome
	Subject         string
	Format          string
	ResultChannelID string
	VoteChannelID   string
	VoteMessageID   string
}

// Finalizer applies tally outcomes. Each proposal is finalized at most once.
type Finalizer struct {
	db      *gorm.DB
	gateway Gateway
	locker  locks.Locker
}

// NewFinalizer creates a finalizer serialising work per proposal through locker.
func NewFinalizer(db *gorm.DB, gw Gateway, locker locks.Locker) *Finalizer {
	return &Finalizer{db: db, gateway: gw, locker: locker}
}

func lockKey(proposalID uint64) string {
	return "proposal:" + strconv.FormatUint(proposalID, 10)
}

// Finalize announces the outcome, removes the voting message and moves the
// proposal out of in_progress. It returns false when another caller already
// finalized the proposal.
func (f *Finalizer) Finalize(ctx context.Context, req Finalization) (bool, error) {
	if req.Outcome == OutcomeNone {
		return false, nil
	}

	unlock, err := f.locker.Lock(ctx, lockKey(req.ProposalID))
	if err != nil {
		return false, fmt.Errorf("lock proposal %d: %w", req.ProposalID, err)
	}
	defer unlock()

	status, err := data.GetProposalStatus(ctx, f.db, req.ProposalID)
	if err != nil {
		return false, fmt.Errorf("read proposal %d status: %w", req.ProposalID, err)
	}
	if status != community.StatusInProgress {
		return false, nil
	}

	if _, err := f.gateway.SendMessage(ctx, req.ResultChannelID, &discordgo.MessageSend{
		Content:         resultAnnouncement(req.Outcome, req.Subject, req.Format),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}); err != nil {
		return false, fmt.Errorf("announce proposal %d result: %w", req.ProposalID, err)
	}

	if req.VoteMessageID != "" {
		if err := f.gateway.DeleteMessage(ctx, req.VoteChannelID, req.VoteMessageID); err != nil {
			if shareddiscord.IsUnknownMessage(err) {
				log.Printf("proposals: voting message %s already deleted", req.VoteMessageID)
			} else {
				log.Printf("proposals: delete voting message %s: %v", req.VoteMessageID, err)
			}
		}
	}

	changed, err := data.TransitionStatus(ctx, f.db, req.ProposalID, req.Outcome.Status())
	if err != nil {
		return false, fmt.Errorf("store proposal %d status: %w", req.ProposalID, err)
	}
	if !changed {
		log.Printf("proposals: warning: proposal %d left in_progress before its %s status was stored", req.ProposalID, req.Outcome)
		return false, nil
	}

	log.Printf("proposals: proposal %d %s", req.ProposalID, req.Outcome)
	return true, nil
}
