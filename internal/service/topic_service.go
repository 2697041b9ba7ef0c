package service

import (
	"errors"

	"github.com/abdullahikhalilmuaz/project-server/internal/cache"
	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/validation"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTopicNotFound      = errors.New("project topic not found")
	ErrTitleAlreadyExists = errors.New("a project topic with this title already exists")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	categoryViewLimit = 20
	trendingViewLimit = 10
)

// sortColumns whitelists the sortable fields and maps them to columns.
var sortColumns = map[string]string{
	"popularity": "popularity",
	"duration":   "duration",
	"complexity": "complexity",
	"createdAt":  "created_at",
}

type TopicService struct {
	topicRepo *repository.TopicRepository
	views     *cache.TopicViewCache // nil disables caching
}

func NewTopicService(topicRepo *repository.TopicRepository, views *cache.TopicViewCache) *TopicService {
	return &TopicService{
		topicRepo: topicRepo,
		views:     views,
	}
}

// CreateTopicInput carries the client-supplied fields for a new topic.
// Popularity and the trending flag are not client-settable at creation;
// they start at their declared defaults and change through updates.
type CreateTopicInput struct {
	Title              string
	Description        string
	Category           models.Category
	Difficulty         models.Difficulty
	Duration           string
	Technologies       []string
	Resources          int
	Complexity         int
	Image              string
	LearningObjectives []string
	Prerequisites      []string
	ExpectedOutcomes   []string
}

func (s *TopicService) Create(in CreateTopicInput) (*models.ProjectTopic, error) {
	topic := &models.ProjectTopic{
		ID:                 uuid.New().String(),
		Title:              in.Title,
		Description:        in.Description,
		Category:           in.Category,
		Difficulty:         in.Difficulty,
		Duration:           in.Duration,
		Technologies:       orEmptySlice(in.Technologies),
		Resources:          in.Resources,
		Complexity:         in.Complexity,
		Image:              in.Image,
		LearningObjectives: orEmptySlice(in.LearningObjectives),
		Prerequisites:      orEmptySlice(in.Prerequisites),
		ExpectedOutcomes:   orEmptySlice(in.ExpectedOutcomes),
		Popularity:         0,
		IsTrending:         false,
		IsActive:           true,
	}
	if topic.Complexity == 0 {
		topic.Complexity = 1
	}
	topic.NormalizeTitleKey()

	if err := validation.Topic(topic); err != nil {
		logger.Log.Warn("Topic validation failed",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, err
	}

	// Case-insensitive pre-check; soft-deleted topics still hold their
	// title. The unique index on title_key settles races.
	existing, err := s.topicRepo.GetByTitleKey(topic.TitleKey)
	if err != nil {
		logger.Log.Error("Failed to check title uniqueness",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Topic title already taken",
			zap.String("title", in.Title),
			zap.String("existing_id", existing.ID),
		)
		return nil, ErrTitleAlreadyExists
	}

	if err := s.topicRepo.Create(topic); err != nil {
		logger.Log.Error("Failed to create topic",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidateViews()

	logger.Log.Info("Project topic created",
		zap.String("topic_id", topic.ID),
		zap.String("title", topic.Title),
		zap.String("category", string(topic.Category)),
	)

	return topic, nil
}

// ListParams are the parsed query parameters of the catalog listing.
type ListParams struct {
	Category   string
	Difficulty string
	Trending   bool
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// Pagination describes the page returned by List.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalTopics int64 `json:"totalTopics"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// TopicPage is one page of catalog results.
type TopicPage struct {
	Topics     []models.ProjectTopic
	Pagination Pagination
}

func (s *TopicService) List(params ListParams) (*TopicPage, error) {
	filter := repository.TopicFilter{
		Trending: params.Trending,
		Search:   params.Search,
	}
	// "all" is the frontend's no-filter sentinel
	if params.Category != "" && params.Category != "all" {
		filter.Category = params.Category
	}
	if params.Difficulty != "" && params.Difficulty != "all" {
		filter.Difficulty = params.Difficulty
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "popularity"
	}
	sort := repository.TopicSort{
		Field:      column,
		Descending: params.SortOrder != "asc",
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	topics, total, err := s.topicRepo.List(filter, sort, page, limit)
	if err != nil {
		logger.Log.Error("Failed to list topics",
			zap.Error(err),
		)
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &TopicPage{
		Topics: topics,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalTopics: total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	}, nil
}

// GetByID returns the topic whether or not it is active. A malformed id
// reads the same as a missing one.
func (s *TopicService) GetByID(id string) (*models.ProjectTopic, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrTopicNotFound
	}

	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to get topic",
			zap.String("topic_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	return topic, nil
}

// UpdateTopicInput carries a partial update; nil fields stay untouched.
type UpdateTopicInput struct {
	Title              *string
	Description        *string
	Category           *models.Category
	Difficulty         *models.Difficulty
	Duration           *string
	Popularity         *int
	IsTrending         *bool
	Technologies       *[]string
	Resources          *int
	Complexity         *int
	Image              *string
	LearningObjectives *[]string
	Prerequisites      *[]string
	ExpectedOutcomes   *[]string
	IsActive           *bool
}

func (s *TopicService) Update(id string, in UpdateTopicInput) (*models.ProjectTopic, error) {
	topic, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		topic.Title = *in.Title
	}
	if in.Description != nil {
		topic.Description = *in.Description
	}
	if in.Category != nil {
		topic.Category = *in.Category
	}
	if in.Difficulty != nil {
		topic.Difficulty = *in.Difficulty
	}
	if in.Duration != nil {
		topic.Duration = *in.Duration
	}
	if in.Popularity != nil {
		topic.Popularity = *in.Popularity
	}
	if in.IsTrending != nil {
		topic.IsTrending = *in.IsTrending
	}
	if in.Technologies != nil {
		topic.Technologies = *in.Technologies
	}
	if in.Resources != nil {
		topic.Resources = *in.Resources
	}
	if in.Complexity != nil {
		topic.Complexity = *in.Complexity
	}
	if in.Image != nil {
		topic.Image = *in.Image
	}
	if in.LearningObjectives != nil {
		topic.LearningObjectives = *in.LearningObjectives
	}
	if in.Prerequisites != nil {
		topic.Prerequisites = *in.Prerequisites
	}
	if in.ExpectedOutcomes != nil {
		topic.ExpectedOutcomes = *in.ExpectedOutcomes
	}
	if in.IsActive != nil {
		topic.IsActive = *in.IsActive
	}
	topic.NormalizeTitleKey()

	// The merged record must satisfy the same constraints as a new one
	if err := validation.Topic(topic); err != nil {
		logger.Log.Warn("Topic update validation failed",
			zap.String("topic_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if in.Title != nil {
		existing, err := s.topicRepo.GetByTitleKey(topic.TitleKey)
		if err != nil {
			logger.Log.Error("Failed to check title uniqueness",
				zap.String("title", *in.Title),
				zap.Error(err),
			)
			return nil, err
		}
		if existing != nil && existing.ID != topic.ID {
			logger.Log.Warn("Topic title already taken by another topic",
				zap.String("title", *in.Title),
				zap.String("existing_id", existing.ID),
			)
			return nil, ErrTitleAlreadyExists
		}
	}

	if err := s.topicRepo.Save(topic); err != nil {
		logger.Log.Error("Failed to update topic",
			zap.String("topic_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	s.invalidateViews()

	logger.Log.Info("Project topic updated",
		zap.String("topic_id", topic.ID),
	)

	return topic, nil
}

// SoftDelete marks the topic inactive. Deleting an already inactive topic
// succeeds again; the operation is idempotent.
func (s *TopicService) SoftDelete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.topicRepo.Deactivate(id); err != nil {
		logger.Log.Error("Failed to soft delete topic",
			zap.String("topic_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateViews()

	logger.Log.Info("Project topic soft deleted",
		zap.String("topic_id", id),
	)

	return nil
}

// GetByCategory returns up to 20 active topics of one category, most
// popular first, in the reduced projection. Served read-through from the
// view cache when one is wired.
func (s *TopicService) GetByCategory(category string) ([]models.TopicSummary, error) {
	if s.views != nil {
		if cached, ok := s.views.GetCategory(category); ok {
			return cached, nil
		}
	}

	topics, err := s.topicRepo.ListByCategory(category, categoryViewLimit)
	if err != nil {
		logger.Log.Error("Failed to list topics by category",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	summaries := make([]models.TopicSummary, 0, len(topics))
	for i := range topics {
		summaries = append(summaries, topics[i].Summary())
	}

	if s.views != nil {
		s.views.SetCategory(category, summaries)
	}

	return summaries, nil
}

// GetTrending returns up to 10 active trending topics, most popular first.
func (s *TopicService) GetTrending() ([]models.TrendingTopic, error) {
	if s.views != nil {
		if cached, ok := s.views.GetTrending(); ok {
			return cached, nil
		}
	}

	topics, err := s.topicRepo.ListTrending(trendingViewLimit)
	if err != nil {
		logger.Log.Error("Failed to list trending topics",
			zap.Error(err),
		)
		return nil, err
	}

	trending := make([]models.TrendingTopic, 0, len(topics))
	for i := range topics {
		trending = append(trending, topics[i].Trending())
	}

	if s.views != nil {
		s.views.SetTrending(trending)
	}

	return trending, nil
}

func (s *TopicService) invalidateViews() {
	if s.views != nil {
		s.views.Invalidate()
	}
}

func orEmptySlice(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
