package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
	}
}

type CreateTopicRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Difficulty         string   `json:"difficulty"`
	Duration           string   `json:"duration"`
	Technologies       []string `json:"technologies"`
	Resources          int      `json:"resources"`
	Complexity         int      `json:"complexity"`
	Image              string   `json:"image"`
	LearningObjectives []string `json:"learningObjectives"`
	Prerequisites      []string `json:"prerequisites"`
	ExpectedOutcomes   []string `json:"expectedOutcomes"`
}

// UpdateTopicRequest uses pointers so absent fields can be told apart
// from zero values; only supplied fields are merged.
type UpdateTopicRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Category           *string   `json:"category"`
	Difficulty         *string   `json:"difficulty"`
	Duration           *string   `json:"duration"`
	Popularity         *int      `json:"popularity"`
	IsTrending         *bool     `json:"isTrending"`
	Technologies       *[]string `json:"technologies"`
	Resources          *int      `json:"resources"`
	Complexity         *int      `json:"complexity"`
	Image              *string   `json:"image"`
	LearningObjectives *[]string `json:"learningObjectives"`
	Prerequisites      *[]string `json:"prerequisites"`
	ExpectedOutcomes   *[]string `json:"expectedOutcomes"`
	IsActive           *bool     `json:"isActive"`
}

// Create handles POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req CreateTopicRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Topic create request parsing failed",
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	topic, err := h.topicService.Create(service.CreateTopicInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           models.Category(req.Category),
		Difficulty:         models.Difficulty(req.Difficulty),
		Duration:           req.Duration,
		Technologies:       req.Technologies,
		Resources:          req.Resources,
		Complexity:         req.Complexity,
		Image:              req.Image,
		LearningObjectives: req.LearningObjectives,
		Prerequisites:      req.Prerequisites,
		ExpectedOutcomes:   req.ExpectedOutcomes,
	})
	if err != nil {
		if v, ok := asViolations(err); ok {
			respondValidation(c, v)
			return
		}
		if errors.Is(err, service.ErrTitleAlreadyExists) {
			respondBadRequest(c, "A project topic with this title already exists")
			return
		}
		respondInternal(c, "Error creating project topic", err)
		return
	}

	respondData(c, http.StatusCreated, "Project topic created successfully", topic)
}

// List handles GET /api/topics with filtering, sorting and pagination
func (h *TopicHandler) List(c *gin.Context) {
	params := service.ListParams{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Trending:   c.Query("trending") == "true",
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sortBy", "popularity"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
		Page:       parsePositiveInt(c.Query("page"), 1),
		Limit:      parsePositiveInt(c.Query("limit"), 10),
	}

	page, err := h.topicService.List(params)
	if err != nil {
		respondInternal(c, "Error fetching project topics", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       page.Topics,
		Pagination: page.Pagination,
	})
}

// GetByID handles GET /api/topics/:id
func (h *TopicHandler) GetByID(c *gin.Context) {
	topic, err := h.topicService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			respondNotFound(c, "Project topic not found")
			return
		}
		respondInternal(c, "Error fetching project topic", err)
		return
	}

	respondData(c, http.StatusOK, "", topic)
}

// Update handles PUT /api/topics/:id
func (h *TopicHandler) Update(c *gin.Context) {
	var req UpdateTopicRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Topic update request parsing failed",
			zap.String("topic_id", c.Param("id")),
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	in := service.UpdateTopicInput{
		Title:              req.Title,
		Description:        req.Description,
		Duration:           req.Duration,
		Popularity:         req.Popularity,
		IsTrending:         req.IsTrending,
		Technologies:       req.Technologies,
		Resources:          req.Resources,
		Complexity:         req.Complexity,
		Image:              req.Image,
		LearningObjectives: req.LearningObjectives,
		Prerequisites:      req.Prerequisites,
		ExpectedOutcomes:   req.ExpectedOutcomes,
		IsActive:           req.IsActive,
	}
	if req.Category != nil {
		cat := models.Category(*req.Category)
		in.Category = &cat
	}
	if req.Difficulty != nil {
		diff := models.Difficulty(*req.Difficulty)
		in.Difficulty = &diff
	}

	topic, err := h.topicService.Update(c.Param("id"), in)
	if err != nil {
		if v, ok := asViolations(err); ok {
			respondValidation(c, v)
			return
		}
		if errors.Is(err, service.ErrTitleAlreadyExists) {
			respondBadRequest(c, "A project topic with this title already exists")
			return
		}
		if errors.Is(err, service.ErrTopicNotFound) {
			respondNotFound(c, "Project topic not found")
			return
		}
		respondInternal(c, "Error updating project topic", err)
		return
	}

	respondData(c, http.StatusOK, "Project topic updated successfully", topic)
}

// Delete handles DELETE /api/topics/:id (soft delete)
func (h *TopicHandler) Delete(c *gin.Context) {
	if err := h.topicService.SoftDelete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			respondNotFound(c, "Project topic not found")
			return
		}
		respondInternal(c, "Error deleting project topic", err)
		return
	}

	respondData(c, http.StatusOK, "Project topic deleted successfully", nil)
}

// GetByCategory handles GET /api/topics/category/:category
func (h *TopicHandler) GetByCategory(c *gin.Context) {
	topics, err := h.topicService.GetByCategory(c.Param("category"))
	if err != nil {
		respondInternal(c, "Error fetching topics by category", err)
		return
	}

	respondData(c, http.StatusOK, "", topics)
}

// GetTrending handles GET /api/topics/trending
func (h *TopicHandler) GetTrending(c *gin.Context) {
	topics, err := h.topicService.GetTrending()
	if err != nil {
		respondInternal(c, "Error fetching trending topics", err)
		return
	}

	respondData(c, http.StatusOK, "", topics)
}

// parsePositiveInt parses s as a positive integer, falling back on the
// default for anything unparseable or non-positive.
func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
