package service_test

import (
	"fmt"
	"testing"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/internal/testutil"
	"github.com/abdullahikhalilmuaz/project-server/internal/validation"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TopicServiceTestSuite struct {
	suite.Suite
	testDB       *testutil.TestDatabase
	topicService *service.TopicService
}

func (s *TopicServiceTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())

	topicRepo := repository.NewTopicRepository(s.testDB.DB)
	// nil cache: the service must work without redis wired
	s.topicService = service.NewTopicService(topicRepo, nil)
}

func (s *TopicServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *TopicServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func validTopicInput(title string) service.CreateTopicInput {
	return service.CreateTopicInput{
		Title:       title,
		Description: "A topic about " + title,
		Category:    models.CategoryWeb,
		Difficulty:  models.DifficultyBeginner,
		Duration:    "6 weeks",
		Complexity:  3,
	}
}

func (s *TopicServiceTestSuite) TestCreateAppliesDefaults() {
	topic, err := s.topicService.Create(service.CreateTopicInput{
		Title:       "Robotics",
		Description: "Build robots",
		Category:    models.CategoryIoT,
		Difficulty:  models.DifficultyBeginner,
		Duration:    "8 weeks",
	})
	assert.NoError(s.T(), err)

	assert.Equal(s.T(), 0, topic.Popularity)
	assert.Equal(s.T(), 1, topic.Complexity)
	assert.False(s.T(), topic.IsTrending)
	assert.True(s.T(), topic.IsActive)
	assert.NotNil(s.T(), topic.Technologies)
	assert.Empty(s.T(), topic.Technologies)
}

func (s *TopicServiceTestSuite) TestCreateTitleConflictCaseInsensitive() {
	_, err := s.topicService.Create(validTopicInput("Robotics"))
	assert.NoError(s.T(), err)

	_, err = s.topicService.Create(validTopicInput("ROBOTICS"))
	assert.ErrorIs(s.T(), err, service.ErrTitleAlreadyExists)
}

func (s *TopicServiceTestSuite) TestCreateTitleConflictIncludesInactive() {
	topic, err := s.topicService.Create(validTopicInput("Compilers"))
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.topicService.SoftDelete(topic.ID))

	// A soft-deleted topic still reserves its title
	_, err = s.topicService.Create(validTopicInput("compilers"))
	assert.ErrorIs(s.T(), err, service.ErrTitleAlreadyExists)
}

func (s *TopicServiceTestSuite) TestCreateValidation() {
	testCases := []struct {
		name   string
		mutate func(*service.CreateTopicInput)
		field  string
	}{
		{"missing title", func(in *service.CreateTopicInput) { in.Title = "" }, "title"},
		{"missing description", func(in *service.CreateTopicInput) { in.Description = "" }, "description"},
		{"bad category", func(in *service.CreateTopicInput) { in.Category = "gaming" }, "category"},
		{"bad difficulty", func(in *service.CreateTopicInput) { in.Difficulty = "expert" }, "difficulty"},
		{"missing duration", func(in *service.CreateTopicInput) { in.Duration = "" }, "duration"},
		{"complexity out of range", func(in *service.CreateTopicInput) { in.Complexity = 11 }, "complexity"},
		{"negative resources", func(in *service.CreateTopicInput) { in.Resources = -1 }, "resources"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := validTopicInput("Valid Title")
			tc.mutate(&in)

			_, err := s.topicService.Create(in)

			var v validation.Violations
			assert.ErrorAs(s.T(), err, &v)
			assert.Equal(s.T(), tc.field, v[0].Field)
		})
	}
}

func (s *TopicServiceTestSuite) TestSoftDeleteHidesFromListButNotGetByID() {
	topic, err := s.topicService.Create(validTopicInput("Networking"))
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.topicService.SoftDelete(topic.ID))

	page, err := s.topicService.List(service.ListParams{Page: 1, Limit: 10})
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), page.Topics)

	// Direct lookup still works regardless of the active flag
	fetched, err := s.topicService.GetByID(topic.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), fetched.IsActive)
}

func (s *TopicServiceTestSuite) TestSoftDeleteIdempotent() {
	topic, err := s.topicService.Create(validTopicInput("Databases"))
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.topicService.SoftDelete(topic.ID))
	assert.NoError(s.T(), s.topicService.SoftDelete(topic.ID))
}

func (s *TopicServiceTestSuite) TestSoftDeleteUnknownID() {
	err := s.topicService.SoftDelete("6b1e2c4d-0000-0000-0000-000000000000")
	assert.ErrorIs(s.T(), err, service.ErrTopicNotFound)
}

func (s *TopicServiceTestSuite) TestGetByIDMalformedID() {
	_, err := s.topicService.GetByID("not-a-uuid")
	assert.ErrorIs(s.T(), err, service.ErrTopicNotFound)
}

func (s *TopicServiceTestSuite) TestUpdateMergesOnlySuppliedFields() {
	topic, err := s.topicService.Create(validTopicInput("Web Assembly"))
	assert.NoError(s.T(), err)

	popularity := 75
	trending := true
	updated, err := s.topicService.Update(topic.ID, service.UpdateTopicInput{
		Popularity: &popularity,
		IsTrending: &trending,
	})
	assert.NoError(s.T(), err)

	assert.Equal(s.T(), 75, updated.Popularity)
	assert.True(s.T(), updated.IsTrending)
	// Untouched fields survive the merge
	assert.Equal(s.T(), "Web Assembly", updated.Title)
	assert.Equal(s.T(), topic.Description, updated.Description)
}

func (s *TopicServiceTestSuite) TestUpdateTitleCollision() {
	_, err := s.topicService.Create(validTopicInput("First Topic"))
	assert.NoError(s.T(), err)
	second, err := s.topicService.Create(validTopicInput("Second Topic"))
	assert.NoError(s.T(), err)

	newTitle := "FIRST topic"
	_, err = s.topicService.Update(second.ID, service.UpdateTopicInput{Title: &newTitle})
	assert.ErrorIs(s.T(), err, service.ErrTitleAlreadyExists)
}

func (s *TopicServiceTestSuite) TestUpdateTitleToItselfAllowed() {
	topic, err := s.topicService.Create(validTopicInput("Self Titled"))
	assert.NoError(s.T(), err)

	// Re-casing your own title is not a collision
	newTitle := "SELF TITLED"
	updated, err := s.topicService.Update(topic.ID, service.UpdateTopicInput{Title: &newTitle})
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "SELF TITLED", updated.Title)
}

func (s *TopicServiceTestSuite) TestUpdateRevalidates() {
	topic, err := s.topicService.Create(validTopicInput("Strict Topic"))
	assert.NoError(s.T(), err)

	popularity := 150
	_, err = s.topicService.Update(topic.ID, service.UpdateTopicInput{Popularity: &popularity})

	var v validation.Violations
	assert.ErrorAs(s.T(), err, &v)
}

func (s *TopicServiceTestSuite) TestListPagination() {
	for i := 0; i < 25; i++ {
		_, err := s.topicService.Create(validTopicInput(fmt.Sprintf("Topic %02d", i)))
		assert.NoError(s.T(), err)
	}

	page, err := s.topicService.List(service.ListParams{Page: 2, Limit: 10})
	assert.NoError(s.T(), err)

	assert.Len(s.T(), page.Topics, 10)
	assert.Equal(s.T(), 2, page.Pagination.CurrentPage)
	assert.Equal(s.T(), 3, page.Pagination.TotalPages)
	assert.Equal(s.T(), int64(25), page.Pagination.TotalTopics)
	assert.True(s.T(), page.Pagination.HasNext)
	assert.True(s.T(), page.Pagination.HasPrev)
}

func (s *TopicServiceTestSuite) TestListLimitCapped() {
	_, err := s.topicService.Create(validTopicInput("Single"))
	assert.NoError(s.T(), err)

	page, err := s.topicService.List(service.ListParams{Page: 1, Limit: 5000})
	assert.NoError(s.T(), err)

	// The cap shows up in totalPages math, not an error
	assert.Equal(s.T(), 1, page.Pagination.TotalPages)
}

func (s *TopicServiceTestSuite) TestListFiltersAndSearch() {
	web := testutil.CreateTestTopic("React Dashboard", models.CategoryWeb, models.DifficultyBeginner, 50, false)
	ai := testutil.CreateTestTopic("Neural Networks", models.CategoryAI, models.DifficultyAdvanced, 90, false)
	s.testDB.DB.Create(web)
	s.testDB.DB.Create(ai)

	page, err := s.topicService.List(service.ListParams{Category: "ai", Page: 1, Limit: 10})
	assert.NoError(s.T(), err)
	assert.Len(s.T(), page.Topics, 1)
	assert.Equal(s.T(), "Neural Networks", page.Topics[0].Title)

	// "all" disables the filter
	page, err = s.topicService.List(service.ListParams{Category: "all", Page: 1, Limit: 10})
	assert.NoError(s.T(), err)
	assert.Len(s.T(), page.Topics, 2)

	// Search matches title or description, case-insensitively
	page, err = s.topicService.List(service.ListParams{Search: "neural", Page: 1, Limit: 10})
	assert.NoError(s.T(), err)
	assert.Len(s.T(), page.Topics, 1)
}

func (s *TopicServiceTestSuite) TestListDefaultSortPopularityDesc() {
	low := testutil.CreateTestTopic("Low Pop", models.CategoryWeb, models.DifficultyBeginner, 10, false)
	high := testutil.CreateTestTopic("High Pop", models.CategoryWeb, models.DifficultyBeginner, 95, false)
	s.testDB.DB.Create(low)
	s.testDB.DB.Create(high)

	page, err := s.topicService.List(service.ListParams{Page: 1, Limit: 10})
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "High Pop", page.Topics[0].Title)
	assert.Equal(s.T(), "Low Pop", page.Topics[1].Title)
}

func (s *TopicServiceTestSuite) TestTrendingView() {
	for i := 0; i < 12; i++ {
		topic := testutil.CreateTestTopic(fmt.Sprintf("Trend %02d", i), models.CategoryWeb, models.DifficultyBeginner, i, true)
		s.testDB.DB.Create(topic)
	}
	inactive := testutil.CreateTestTopic("Hidden Trend", models.CategoryWeb, models.DifficultyBeginner, 99, true)
	inactive.IsActive = false
	s.testDB.DB.Create(inactive)

	trending, err := s.topicService.GetTrending()
	assert.NoError(s.T(), err)

	// Capped at 10, active only, most popular first
	assert.Len(s.T(), trending, 10)
	assert.Equal(s.T(), "Trend 11", trending[0].Title)
	for _, item := range trending {
		assert.NotEqual(s.T(), "Hidden Trend", item.Title)
	}
}

func (s *TopicServiceTestSuite) TestCategoryView() {
	for i := 0; i < 25; i++ {
		topic := testutil.CreateTestTopic(fmt.Sprintf("Mobile %02d", i), models.CategoryMobile, models.DifficultyBeginner, i, false)
		s.testDB.DB.Create(topic)
	}

	summaries, err := s.topicService.GetByCategory("mobile")
	assert.NoError(s.T(), err)
	assert.Len(s.T(), summaries, 20)
	assert.Equal(s.T(), "Mobile 24", summaries[0].Title)
}

func TestTopicServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TopicServiceTestSuite))
}
