package webserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snowledge/proposals/src/actions/proposals/data"
	"github.com/snowledge/proposals/src/shared/community"
	"gorm.io/gorm"
)

type Proposals struct {
	db *gorm.DB
}

func NewProposals(db *gorm.DB) Proposals {
	return Proposals{db: db}
}

type proposalView struct {
	ID            uint64                   `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Format        string                   `json:"format"`
	IsContributor bool                     `json:"isContributor"`
	Status        community.ProposalStatus `json:"status"`
	EndDate       time.Time                `json:"endDate"`
	CreatedAt     time.Time                `json:"createdAt"`
	Votes         *data.VoteSummary        `json:"votes,omitempty"`
}

func toView(p community.Proposal) proposalView {
	return proposalView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Format:        p.Format,
		IsContributor: p.IsContributor,
		Status:        p.Status,
		EndDate:       p.EndDate,
		CreatedAt:     p.CreatedAt,
	}
}

func validStatus(s community.ProposalStatus) bool {
	switch s {
	case "", community.StatusInProgress, community.StatusAccepted, community.StatusRejected:
		return true
	}
	return false
}

// List returns a community's proposals, optionally filtered by ?status=.
func (h Proposals) List(c *gin.Context) {
	status := community.ProposalStatus(c.Query("status"))
	if !validStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid status"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var comm community.Community
	err := h.db.WithContext(c.Request.Context()).Where("slug = ?", c.Param("slug")).First(&comm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "community not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	list, err := data.ListProposals(c.Request.Context(), h.db, comm.ID, status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	out := make([]proposalView, 0, len(list))
	for _, p := range list {
		out = append(out, toView(p))
	}
	c.JSON(http.StatusOK, gin.H{"community": comm.Slug, "proposals": out})
}

// Get returns one proposal with the per-axis vote summary from the ledger.
func (h Proposals) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}

	p, err := data.GetProposal(c.Request.Context(), h.db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
		return
	}

	summary, err := data.SummarizeVotes(c.Request.Context(), h.db, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	view := toView(*p)
	view.Votes = &summary
	c.JSON(http.StatusOK, view)
}
