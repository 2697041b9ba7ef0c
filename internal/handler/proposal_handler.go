package handler

import (
	"errors"
	"net/http"

	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProposalHandler struct {
	proposalService *service.ProposalService
}

func NewProposalHandler(proposalService *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

// SubmitProposalRequest mirrors the submission payload; the nested blocks
// are pointers so "absent" and "empty" stay distinguishable.
type SubmitProposalRequest struct {
	User              *service.SubmitUser              `json:"user"`
	SelectedTopics    []service.SubmitTopic            `json:"selectedTopics"`
	GeneratedProposal *service.SubmitGeneratedProposal `json:"generatedProposal"`
}

type ReviewProposalRequest struct {
	Status     string `json:"status"`
	Feedback   string `json:"feedback"`
	ReviewedBy string `json:"reviewedBy"`
}

// Submit handles POST /api/proposals/submit
func (h *ProposalHandler) Submit(c *gin.Context) {
	var req SubmitProposalRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Proposal submission parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	proposal, err := h.proposalService.Submit(service.SubmitInput{
		User:              req.User,
		SelectedTopics:    req.SelectedTopics,
		GeneratedProposal: req.GeneratedProposal,
	})
	if err != nil {
		if v, ok := asViolations(err); ok {
			respondValidation(c, v)
			return
		}
		respondInternal(c, "Error submitting proposal", err)
		return
	}

	respondData(c, http.StatusCreated, "Proposal submitted successfully!", proposal)
}

// GetAll handles GET /api/proposals/admin/all
func (h *ProposalHandler) GetAll(c *gin.Context) {
	proposals, err := h.proposalService.GetAll()
	if err != nil {
		respondInternal(c, "Error fetching proposals", err)
		return
	}

	respondList(c, proposals, len(proposals))
}

// GetByUser handles GET /api/proposals/user/:userId
func (h *ProposalHandler) GetByUser(c *gin.Context) {
	proposals, err := h.proposalService.GetByUser(c.Param("userId"))
	if err != nil {
		respondInternal(c, "Error fetching user proposals", err)
		return
	}

	respondList(c, proposals, len(proposals))
}

// GetByID handles GET /api/proposals/:id
func (h *ProposalHandler) GetByID(c *gin.Context) {
	proposal, err := h.proposalService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			respondNotFound(c, "Proposal not found")
			return
		}
		respondInternal(c, "Error fetching proposal", err)
		return
	}

	respondData(c, http.StatusOK, "", proposal)
}

// UpdateStatus handles PUT /api/proposals/admin/update/:id
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	var req ReviewProposalRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Proposal review parsing failed",
			zap.String("proposal_id", c.Param("id")),
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	proposal, err := h.proposalService.UpdateStatus(c.Param("id"), service.ReviewInput{
		Status:     req.Status,
		Feedback:   req.Feedback,
		ReviewedBy: req.ReviewedBy,
	})
	if err != nil {
		if v, ok := asViolations(err); ok {
			respondValidation(c, v)
			return
		}
		if errors.Is(err, service.ErrProposalNotFound) {
			respondNotFound(c, "Proposal not found")
			return
		}
		respondInternal(c, "Error updating proposal", err)
		return
	}

	respondData(c, http.StatusOK, "Proposal updated successfully", proposal)
}

// Delete handles DELETE /api/proposals/:id (hard delete)
func (h *ProposalHandler) Delete(c *gin.Context) {
	if err := h.proposalService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			respondNotFound(c, "Proposal not found")
			return
		}
		respondInternal(c, "Error deleting proposal", err)
		return
	}

	respondData(c, http.StatusOK, "Proposal deleted successfully", nil)
}
