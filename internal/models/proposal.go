package models

import (
	"time"
)

type ProposalStatus string

const (
	StatusPending    ProposalStatus = "pending"
	StatusReviewed   ProposalStatus = "reviewed"
	StatusApproved   ProposalStatus = "approved"
	StatusRejected   ProposalStatus = "rejected"
	StatusInProgress ProposalStatus = "in-progress"
	StatusCompleted  ProposalStatus = "completed"
)

// ProposalStatuses lists every allowed review status.
var ProposalStatuses = []ProposalStatus{
	StatusPending, StatusReviewed, StatusApproved,
	StatusRejected, StatusInProgress, StatusCompleted,
}

func ValidProposalStatus(s ProposalStatus) bool {
	for _, known := range ProposalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UserSnapshot is the submitting student captured at submission time.
// It is a copy, not a reference: later account changes never touch it.
type UserSnapshot struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
	Semester   string `json:"semester"`
}

// TopicSnapshot is a selected topic captured at submission time.
type TopicSnapshot struct {
	TopicID      string   `json:"topicId"`
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

// GeneratedProposal is the composed proposal body.
type GeneratedProposal struct {
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

// AdminFeedback is attached when a reviewer updates a proposal.
type AdminFeedback struct {
	Feedback   string    `json:"feedback"`
	ReviewedBy string    `json:"reviewedBy"`
	ReviewedAt time.Time `json:"reviewedAt"`
}

// Proposal ties a user snapshot to exactly three topic snapshots plus the
// generated body. The snapshots and lists persist as JSON columns so the
// whole proposal reads and writes as a single row.
type Proposal struct {
	ID                string            `gorm:"type:uuid;primaryKey" json:"id"`
	User              UserSnapshot      `gorm:"serializer:json" json:"user"`
	UserID            string            `gorm:"type:varchar(100);index;not null" json:"-"` // denormalized from User.UserID for the by-user listing
	SelectedTopics    []TopicSnapshot   `gorm:"serializer:json" json:"selectedTopics"`
	GeneratedProposal GeneratedProposal `gorm:"serializer:json" json:"generatedProposal"`
	Status            ProposalStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminFeedback     *AdminFeedback    `gorm:"serializer:json" json:"adminFeedback,omitempty"`
	SubmissionDate    time.Time         `gorm:"index;not null" json:"submissionDate"`
	LastUpdated       time.Time         `json:"lastUpdated"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}
