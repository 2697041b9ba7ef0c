package repository

import (
	"errors"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *ProposalRepository) GetByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Where("id = ?", id).First(&proposal).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &proposal, nil
}

// GetAll returns every proposal, newest submission first. The admin view
// is unpaginated by design.
func (r *ProposalRepository) GetAll() ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Order("submission_date DESC").Find(&proposals).Error
	return proposals, err
}

// GetByUserID matches against the denormalized user id column, newest first.
func (r *ProposalRepository) GetByUserID(userID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.
		Where("user_id = ?", userID).
		Order("submission_date DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepository) Save(proposal *models.Proposal) error {
	return r.db.Save(proposal).Error
}

// Delete removes the row permanently. Proposals hard-delete, unlike the
// catalog's soft delete.
func (r *ProposalRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Proposal{}).Error
}
