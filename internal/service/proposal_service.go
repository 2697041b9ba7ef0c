package service

import (
	"errors"
	"strings"
	"time"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/validation"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrProposalNotFound = errors.New("proposal not found")

// requiredTopicCount is the core invariant of the submission workflow:
// every proposal ties its student to exactly three selected topics.
const requiredTopicCount = 3

// Snapshot defaults. Each field falls back independently; a topic missing
// only its duration still keeps its real title.
const (
	defaultTopicTitle      = "Untitled Topic"
	defaultTopicCategory   = "general"
	defaultTopicDifficulty = "beginner"
	defaultTopicDuration   = "4 weeks"
	defaultTopicComplexity = 5
	defaultTopicPopularity = 50

	defaultScope          = "Project scope not specified"
	defaultMethodology    = "Agile methodology"
	defaultTimeline       = "12-14 weeks"
	defaultBudgetEstimate = "$15,000 - $20,000"
)

var (
	defaultObjectives       = []string{"Objective 1", "Objective 2"}
	defaultExpectedOutcomes = []string{"Working application"}
	defaultResourcesNeeded  = []string{"Development team", "Cloud services"}
)

type ProposalService struct {
	proposalRepo *repository.ProposalRepository
}

func NewProposalService(proposalRepo *repository.ProposalRepository) *ProposalService {
	return &ProposalService{proposalRepo: proposalRepo}
}

// SubmitInput is the heterogeneous client payload of a submission.
// Nil pointers mean the block was absent from the request entirely.
type SubmitInput struct {
	User              *SubmitUser              `json:"user"`
	SelectedTopics    []SubmitTopic            `json:"selectedTopics"`
	GeneratedProposal *SubmitGeneratedProposal `json:"generatedProposal"`
}

type SubmitUser struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
	Semester   string `json:"semester"`
}

// SubmitTopic accepts both topicId and a raw _id, since clients send
// whichever identifier they have on hand.
type SubmitTopic struct {
	TopicID      string   `json:"topicId"`
	RawID        string   `json:"_id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Duration     string   `json:"duration"`
	Complexity   int      `json:"complexity"`
	Popularity   int      `json:"popularity"`
	Image        string   `json:"image"`
}

type SubmitGeneratedProposal struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Objectives       []string `json:"objectives"`
	Scope            string   `json:"scope"`
	Methodology      string   `json:"methodology"`
	ExpectedOutcomes []string `json:"expectedOutcomes"`
	Timeline         string   `json:"timeline"`
	ResourcesNeeded  []string `json:"resourcesNeeded"`
	BudgetEstimate   string   `json:"budgetEstimate"`
}

// Submit validates and normalizes a submission into a persisted proposal.
// Validation runs in full before any write; a failed submission leaves no
// record behind.
func (s *ProposalService) Submit(in SubmitInput) (*models.Proposal, error) {
	logger.Log.Debug("Processing proposal submission")

	if err := validateSubmitInput(in); err != nil {
		logger.Log.Warn("Proposal submission validation failed",
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()

	proposal := &models.Proposal{
		ID:                uuid.New().String(),
		User:              buildUserSnapshot(in.User),
		SelectedTopics:    buildTopicSnapshots(in.SelectedTopics),
		GeneratedProposal: buildGeneratedProposal(in.GeneratedProposal),
		Status:            models.StatusPending,
		SubmissionDate:    now,
		LastUpdated:       now,
	}
	proposal.UserID = proposal.User.UserID

	if err := s.proposalRepo.Create(proposal); err != nil {
		logger.Log.Error("Failed to save proposal",
			zap.String("user_id", proposal.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Proposal submitted successfully",
		zap.String("proposal_id", proposal.ID),
		zap.String("user_id", proposal.UserID),
		zap.String("title", proposal.GeneratedProposal.Title),
	)

	return proposal, nil
}

func (s *ProposalService) GetAll() ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch proposals",
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Debug("Fetched all proposals",
		zap.Int("count", len(proposals)),
	)

	return proposals, nil
}

func (s *ProposalService) GetByUser(userID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.GetByUserID(userID)
	if err != nil {
		logger.Log.Error("Failed to fetch user proposals",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return proposals, nil
}

func (s *ProposalService) GetByID(id string) (*models.Proposal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProposalNotFound
	}

	proposal, err := s.proposalRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch proposal",
			zap.String("proposal_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	return proposal, nil
}

// ReviewInput is the admin-side status/feedback update. Empty strings mean
// the field was not supplied.
type ReviewInput struct {
	Status     string
	Feedback   string
	ReviewedBy string
}

// UpdateStatus applies a review. An invalid status rejects the whole
// update before anything is loaded or written.
func (s *ProposalService) UpdateStatus(id string, in ReviewInput) (*models.Proposal, error) {
	if in.Status != "" && !models.ValidProposalStatus(models.ProposalStatus(in.Status)) {
		var v validation.Violations
		v = v.Add("status", "must be one of: pending, reviewed, approved, rejected, in-progress, completed")
		logger.Log.Warn("Proposal review rejected: invalid status",
			zap.String("proposal_id", id),
			zap.String("status", in.Status),
		)
		return nil, v
	}

	proposal, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		proposal.Status = models.ProposalStatus(in.Status)
	}

	if in.Feedback != "" || in.ReviewedBy != "" {
		reviewedBy := in.ReviewedBy
		if reviewedBy == "" {
			reviewedBy = "Admin"
		}
		proposal.AdminFeedback = &models.AdminFeedback{
			Feedback:   in.Feedback,
			ReviewedBy: reviewedBy,
			ReviewedAt: time.Now(),
		}
	}

	proposal.LastUpdated = time.Now()

	if err := s.proposalRepo.Save(proposal); err != nil {
		logger.Log.Error("Failed to update proposal",
			zap.String("proposal_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Proposal review applied",
		zap.String("proposal_id", proposal.ID),
		zap.String("status", string(proposal.Status)),
	)

	return proposal, nil
}

// Delete removes the proposal permanently. Unlike catalog topics there is
// no inactive state for proposals.
func (s *ProposalService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.proposalRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete proposal",
			zap.String("proposal_id", id),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Proposal deleted",
		zap.String("proposal_id", id),
	)

	return nil
}

func validateSubmitInput(in SubmitInput) error {
	var v validation.Violations

	if in.User == nil {
		v = v.Add("user", "is required")
	}
	if in.SelectedTopics == nil {
		v = v.Add("selectedTopics", "is required")
	} else if len(in.SelectedTopics) != requiredTopicCount {
		v = v.Add("selectedTopics", "a proposal must contain exactly 3 topics")
	}
	if in.GeneratedProposal == nil {
		v = v.Add("generatedProposal", "is required")
	}

	if in.User != nil {
		if strings.TrimSpace(in.User.Name) == "" {
			v = v.Add("user.name", "is required")
		}
		if strings.TrimSpace(in.User.Email) == "" {
			v = v.Add("user.email", "is required")
		}
	}

	if in.GeneratedProposal != nil {
		if strings.TrimSpace(in.GeneratedProposal.Title) == "" {
			v = v.Add("generatedProposal.title", "is required")
		}
		if strings.TrimSpace(in.GeneratedProposal.Description) == "" {
			v = v.Add("generatedProposal.description", "is required")
		}
	}

	return v.OrNil()
}

func buildUserSnapshot(u *SubmitUser) models.UserSnapshot {
	userID := u.UserID
	if userID == "" {
		userID = "user_" + uuid.New().String()
	}

	return models.UserSnapshot{
		UserID:     userID,
		Name:       u.Name,
		Email:      u.Email,
		StudentID:  u.StudentID,
		Department: u.Department,
		Semester:   u.Semester,
	}
}

// buildTopicSnapshots copies each selected topic into an independent
// snapshot, defaulting every field on its own. Later catalog changes never
// reach these copies.
func buildTopicSnapshots(topics []SubmitTopic) []models.TopicSnapshot {
	snapshots := make([]models.TopicSnapshot, 0, len(topics))

	for _, t := range topics {
		topicID := t.TopicID
		if topicID == "" {
			topicID = t.RawID
		}
		if topicID == "" {
			topicID = "topic_" + uuid.New().String()
		}

		snapshots = append(snapshots, models.TopicSnapshot{
			TopicID:      topicID,
			Title:        orDefault(t.Title, defaultTopicTitle),
			Category:     orDefault(t.Category, defaultTopicCategory),
			Difficulty:   orDefault(t.Difficulty, defaultTopicDifficulty),
			Description:  t.Description,
			Technologies: orEmptySlice(t.Technologies),
			Duration:     orDefault(t.Duration, defaultTopicDuration),
			Complexity:   orDefaultInt(t.Complexity, defaultTopicComplexity),
			Popularity:   orDefaultInt(t.Popularity, defaultTopicPopularity),
			Image:        t.Image,
		})
	}

	return snapshots
}

func buildGeneratedProposal(gp *SubmitGeneratedProposal) models.GeneratedProposal {
	return models.GeneratedProposal{
		Title:            gp.Title,
		Description:      gp.Description,
		Objectives:       orDefaultSlice(gp.Objectives, defaultObjectives),
		Scope:            orDefault(gp.Scope, defaultScope),
		Methodology:      orDefault(gp.Methodology, defaultMethodology),
		ExpectedOutcomes: orDefaultSlice(gp.ExpectedOutcomes, defaultExpectedOutcomes),
		Timeline:         orDefault(gp.Timeline, defaultTimeline),
		ResourcesNeeded:  orDefaultSlice(gp.ResourcesNeeded, defaultResourcesNeeded),
		BudgetEstimate:   orDefault(gp.BudgetEstimate, defaultBudgetEstimate),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

func orDefaultSlice(value, fallback []string) []string {
	if len(value) == 0 {
		out := make([]string, len(fallback))
		copy(out, fallback)
		return out
	}
	return value
}
