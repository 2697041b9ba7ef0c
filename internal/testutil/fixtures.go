package testutil

import (
	"time"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser creates a user record with a real Argon2 password hash
func CreateTestUser(fullName, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// CreateTestTopic creates an active topic record with sane defaults
func CreateTestTopic(title string, category models.Category, difficulty models.Difficulty, popularity int, trending bool) *models.ProjectTopic {
	topic := &models.ProjectTopic{
		ID:                 uuid.New().String(),
		Title:              title,
		Description:        "Test description for " + title,
		Category:           category,
		Difficulty:         difficulty,
		Duration:           "6 weeks",
		Popularity:         popularity,
		IsTrending:         trending,
		Technologies:       []string{"Go"},
		Complexity:         5,
		LearningObjectives: []string{},
		Prerequisites:      []string{},
		ExpectedOutcomes:   []string{},
		IsActive:           true,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	topic.NormalizeTitleKey()
	return topic
}

// ValidSubmitInput returns a complete, valid proposal submission with
// three fully populated topics
func ValidSubmitInput() service.SubmitInput {
	return service.SubmitInput{
		User: &service.SubmitUser{
			UserID:     "user_12345",
			Name:       "John Doe",
			Email:      "john@example.com",
			StudentID:  "STU001",
			Department: "Computer Science",
			Semester:   "8th",
		},
		SelectedTopics: []service.SubmitTopic{
			{
				TopicID:      "topic_1",
				Title:        "E-commerce Platform",
				Category:     "web",
				Difficulty:   "intermediate",
				Description:  "Full-stack e-commerce platform",
				Technologies: []string{"React", "Node.js"},
				Duration:     "8 weeks",
				Complexity:   7,
				Popularity:   85,
			},
			{
				TopicID:      "topic_2",
				Title:        "Mobile Banking App",
				Category:     "mobile",
				Difficulty:   "advanced",
				Description:  "Secure mobile banking application",
				Technologies: []string{"React Native", "Firebase"},
				Duration:     "10 weeks",
				Complexity:   9,
				Popularity:   90,
			},
			{
				TopicID:      "topic_3",
				Title:        "AI Chatbot",
				Category:     "ai",
				Difficulty:   "intermediate",
				Description:  "NLP chatbot for customer service",
				Technologies: []string{"Python", "TensorFlow"},
				Duration:     "6 weeks",
				Complexity:   8,
				Popularity:   88,
			},
		},
		GeneratedProposal: &service.SubmitGeneratedProposal{
			Title:       "Combined Web, Mobile and AI Project",
			Description: "A comprehensive project proposal",
			Objectives:  []string{"Build the platform", "Ship it"},
			Scope:       "Integration of three systems",
			Methodology: "Agile with 2-week sprints",
			Timeline:    "12-14 weeks",
		},
	}
}
