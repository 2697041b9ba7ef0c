package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"gorm.io/gorm"
)

// TopicFilter narrows the catalog listing. Zero values mean "no filter".
type TopicFilter struct {
	Category   string
	Difficulty string
	Trending   bool
	Search     string
}

// TopicSort orders the catalog listing. Field must be one of the columns
// the service layer allows; the repository trusts it.
type TopicSort struct {
	Field      string
	Descending bool
}

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) Create(topic *models.ProjectTopic) error {
	return r.db.Create(topic).Error
}

// GetByTitleKey finds a topic by its normalized (lowercased) title.
// Inactive rows are included: a soft-deleted topic still reserves its title.
// Returns (nil, nil) when the title is free.
func (r *TopicRepository) GetByTitleKey(titleKey string) (*models.ProjectTopic, error) {
	var topic models.ProjectTopic
	err := r.db.Where("title_key = ?", titleKey).First(&topic).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &topic, nil
}

// GetByID returns the topic regardless of its active flag.
func (r *TopicRepository) GetByID(id string) (*models.ProjectTopic, error) {
	var topic models.ProjectTopic
	err := r.db.Where("id = ?", id).First(&topic).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &topic, nil
}

// List returns one page of active topics matching the filter, plus the
// total match count for pagination.
func (r *TopicRepository) List(filter TopicFilter, sort TopicSort, page, limit int) ([]models.ProjectTopic, int64, error) {
	query := r.db.Model(&models.ProjectTopic{}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Trending {
		query = query.Where("is_trending = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	var topics []models.ProjectTopic
	err := query.
		Order(fmt.Sprintf("%s %s", sort.Field, direction)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

func (r *TopicRepository) Save(topic *models.ProjectTopic) error {
	return r.db.Save(topic).Error
}

// Deactivate flips the active flag off. Re-running it on an already
// inactive topic is a no-op, which keeps the soft delete idempotent.
func (r *TopicRepository) Deactivate(id string) error {
	return r.db.Model(&models.ProjectTopic{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// ListByCategory returns active topics of one category, most popular first.
func (r *TopicRepository) ListByCategory(category string, limit int) ([]models.ProjectTopic, error) {
	var topics []models.ProjectTopic
	err := r.db.
		Where("category = ? AND is_active = ?", category, true).
		Order("popularity DESC").
		Limit(limit).
		Find(&topics).Error

	return topics, err
}

// ListTrending returns active topics carrying the trending flag, most
// popular first.
func (r *TopicRepository) ListTrending(limit int) ([]models.ProjectTopic, error) {
	var topics []models.ProjectTopic
	err := r.db.
		Where("is_trending = ? AND is_active = ?", true, true).
		Order("popularity DESC").
		Limit(limit).
		Find(&topics).Error

	return topics, err
}
