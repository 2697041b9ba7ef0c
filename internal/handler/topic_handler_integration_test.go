package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdullahikhalilmuaz/project-server/internal/handler"
	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/internal/testutil"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// TopicHandlerIntegrationTestSuite defines test suite
type TopicHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB       *testutil.TestDatabase
	topicHandler *handler.TopicHandler
	router       *gin.Engine
}

// SetupSuite runs before all tests
func (s *TopicHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	topicRepo := repository.NewTopicRepository(s.testDB.DB)
	// nil cache: the view endpoints hit the database directly in tests
	topicService := service.NewTopicService(topicRepo, nil)
	s.topicHandler = handler.NewTopicHandler(topicService)

	s.router = gin.New()
	s.router.GET("/api/topics", s.topicHandler.List)
	s.router.GET("/api/topics/trending", s.topicHandler.GetTrending)
	s.router.GET("/api/topics/category/:category", s.topicHandler.GetByCategory)
	s.router.GET("/api/topics/:id", s.topicHandler.GetByID)
	s.router.POST("/api/topics", s.topicHandler.Create)
	s.router.PUT("/api/topics/:id", s.topicHandler.Update)
	s.router.DELETE("/api/topics/:id", s.topicHandler.Delete)
}

// TearDownSuite runs after all tests
func (s *TopicHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *TopicHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *TopicHandlerIntegrationTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		buf = bytes.NewBuffer(bodyBytes)
	} else {
		buf = &bytes.Buffer{}
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TopicHandlerIntegrationTestSuite) seedTopic(title string, category models.Category, popularity int, trending bool) *models.ProjectTopic {
	topic := testutil.CreateTestTopic(title, category, models.DifficultyIntermediate, popularity, trending)
	s.testDB.DB.Create(topic)
	return topic
}

func validCreateBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "A description for " + title,
		"category":    "web",
		"difficulty":  "beginner",
		"duration":    "6 weeks",
	}
}

// TestCreateSuccess tests successful topic creation
func (s *TopicHandlerIntegrationTestSuite) TestCreateSuccess() {
	w := s.request(http.MethodPost, "/api/topics", validCreateBody("Realtime Dashboard"))

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), true, response["success"])
	assert.Equal(s.T(), "Project topic created successfully", response["message"])

	topic := response["data"].(map[string]interface{})
	assert.Equal(s.T(), "Realtime Dashboard", topic["title"])
	assert.Equal(s.T(), "web", topic["category"])
	assert.Equal(s.T(), true, topic["isActive"])
	assert.Equal(s.T(), float64(0), topic["popularity"])
	assert.NotEmpty(s.T(), topic["id"])
}

// TestCreateDuplicateTitle tests the case-insensitive title conflict
func (s *TopicHandlerIntegrationTestSuite) TestCreateDuplicateTitle() {
	w := s.request(http.MethodPost, "/api/topics", validCreateBody("Smart Parking"))
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	// Same title, different casing
	w = s.request(http.MethodPost, "/api/topics", validCreateBody("SMART PARKING"))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "A project topic with this title already exists", response["message"])
}

// TestCreateValidation tests creation with invalid input
func (s *TopicHandlerIntegrationTestSuite) TestCreateValidation() {
	body := validCreateBody("Broken Topic")
	body["category"] = "gardening"

	w := s.request(http.MethodPost, "/api/topics", body)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), false, response["success"])

	violations := response["errors"].([]interface{})
	first := violations[0].(map[string]interface{})
	assert.Equal(s.T(), "category", first["field"])
}

// TestListPagination walks a catalog of 25 topics page by page
func (s *TopicHandlerIntegrationTestSuite) TestListPagination() {
	for i := 0; i < 25; i++ {
		s.seedTopic(fmt.Sprintf("Topic %02d", i), models.CategoryWeb, i, false)
	}

	w := s.request(http.MethodGet, "/api/topics?page=2&limit=10", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(s.T(), err)

	topics := response["data"].([]interface{})
	assert.Len(s.T(), topics, 10)

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(s.T(), float64(2), pagination["currentPage"])
	assert.Equal(s.T(), float64(3), pagination["totalPages"])
	assert.Equal(s.T(), float64(25), pagination["totalTopics"])
	assert.Equal(s.T(), true, pagination["hasNext"])
	assert.Equal(s.T(), true, pagination["hasPrev"])

	// Last page holds the remainder
	w = s.request(http.MethodGet, "/api/topics?page=3&limit=10", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(s.T(), response["data"].([]interface{}), 5)
	pagination = response["pagination"].(map[string]interface{})
	assert.Equal(s.T(), false, pagination["hasNext"])
}

// TestListFilters tests category/difficulty filtering and the "all" sentinel
func (s *TopicHandlerIntegrationTestSuite) TestListFilters() {
	s.seedTopic("Web One", models.CategoryWeb, 10, false)
	s.seedTopic("Web Two", models.CategoryWeb, 20, false)
	s.seedTopic("Chain One", models.CategoryBlockchain, 30, false)

	w := s.request(http.MethodGet, "/api/topics?category=web", nil)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(s.T(), response["data"].([]interface{}), 2)

	// "all" disables the filter rather than matching a category named all
	w = s.request(http.MethodGet, "/api/topics?category=all", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(s.T(), response["data"].([]interface{}), 3)
}

// TestListSortWhitelist tests that an unknown sort field falls back to
// popularity instead of reaching the database
func (s *TopicHandlerIntegrationTestSuite) TestListSortWhitelist() {
	s.seedTopic("Low", models.CategoryWeb, 5, false)
	s.seedTopic("High", models.CategoryWeb, 95, false)

	w := s.request(http.MethodGet, "/api/topics?sortBy=password", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	topics := response["data"].([]interface{})
	first := topics[0].(map[string]interface{})
	assert.Equal(s.T(), "High", first["title"])
}

// TestListExcludesInactive tests soft-deleted topics stay out of the catalog
func (s *TopicHandlerIntegrationTestSuite) TestListExcludesInactive() {
	kept := s.seedTopic("Kept", models.CategoryWeb, 10, false)
	removed := s.seedTopic("Removed", models.CategoryWeb, 20, false)

	w := s.request(http.MethodDelete, "/api/topics/"+removed.ID, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Project topic deleted successfully", response["message"])

	w = s.request(http.MethodGet, "/api/topics", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	topics := response["data"].([]interface{})
	assert.Len(s.T(), topics, 1)
	assert.Equal(s.T(), kept.ID, topics[0].(map[string]interface{})["id"])

	// Direct fetch still works after the soft delete
	w = s.request(http.MethodGet, "/api/topics/"+removed.ID, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	topic := response["data"].(map[string]interface{})
	assert.Equal(s.T(), false, topic["isActive"])
}

// TestGetByIDNotFound tests fetching a missing topic
func (s *TopicHandlerIntegrationTestSuite) TestGetByIDNotFound() {
	for _, id := range []string{
		"2c9e7f00-0000-0000-0000-000000000000", // well-formed, absent
		"not-a-uuid",                           // malformed
	} {
		w := s.request(http.MethodGet, "/api/topics/"+id, nil)
		assert.Equal(s.T(), http.StatusNotFound, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(s.T(), "Project topic not found", response["message"])
	}
}

// TestUpdatePartial tests that only supplied fields change
func (s *TopicHandlerIntegrationTestSuite) TestUpdatePartial() {
	topic := s.seedTopic("Original Title", models.CategoryWeb, 40, false)

	w := s.request(http.MethodPut, "/api/topics/"+topic.ID, map[string]interface{}{
		"popularity": 75,
		"isTrending": true,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Project topic updated successfully", response["message"])

	updated := response["data"].(map[string]interface{})
	assert.Equal(s.T(), "Original Title", updated["title"])
	assert.Equal(s.T(), float64(75), updated["popularity"])
	assert.Equal(s.T(), true, updated["isTrending"])
}

// TestUpdateRejectsOutOfRange tests update revalidation
func (s *TopicHandlerIntegrationTestSuite) TestUpdateRejectsOutOfRange() {
	topic := s.seedTopic("Bounded", models.CategoryWeb, 40, false)

	w := s.request(http.MethodPut, "/api/topics/"+topic.ID, map[string]interface{}{
		"popularity": 150,
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	violations := response["errors"].([]interface{})
	first := violations[0].(map[string]interface{})
	assert.Equal(s.T(), "popularity", first["field"])
}

// TestTrendingEndpoint tests the trending view projection
func (s *TopicHandlerIntegrationTestSuite) TestTrendingEndpoint() {
	s.seedTopic("Quiet Topic", models.CategoryWeb, 90, false)
	s.seedTopic("Hot Topic", models.CategoryAI, 80, true)

	w := s.request(http.MethodGet, "/api/topics/trending", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	topics := response["data"].([]interface{})
	assert.Len(s.T(), topics, 1)

	trending := topics[0].(map[string]interface{})
	assert.Equal(s.T(), "Hot Topic", trending["title"])
	assert.Equal(s.T(), true, trending["isTrending"])
	// Reduced projection: no duration or technologies here
	_, hasDuration := trending["duration"]
	assert.False(s.T(), hasDuration)
}

// TestCategoryEndpoint tests the per-category view projection
func (s *TopicHandlerIntegrationTestSuite) TestCategoryEndpoint() {
	s.seedTopic("Mobile App", models.CategoryMobile, 60, false)
	s.seedTopic("Web App", models.CategoryWeb, 70, false)

	w := s.request(http.MethodGet, "/api/topics/category/mobile", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	topics := response["data"].([]interface{})
	assert.Len(s.T(), topics, 1)

	summary := topics[0].(map[string]interface{})
	assert.Equal(s.T(), "Mobile App", summary["title"])
	// Reduced projection: category is implied by the route
	_, hasCategory := summary["category"]
	assert.False(s.T(), hasCategory)
}

// TestSuite runs all tests in the suite
func TestTopicHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TopicHandlerIntegrationTestSuite))
}
