package main

import (
	"log"
	"os"
	"strings"

	"github.com/abdullahikhalilmuaz/project-server/internal/config"
	"github.com/abdullahikhalilmuaz/project-server/internal/database"
	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/utils"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedAdmin()
	seedTopics()
}

func seedAdmin() {
	adminName := os.Getenv("ADMIN_FULL_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Println("Skipping admin seed: ADMIN_FULL_NAME, ADMIN_EMAIL, ADMIN_PASSWORD not set")
		return
	}

	var admin models.User
	if err := database.DB.Where("email = ?", adminEmail).First(&admin).Error; err == nil {
		log.Println("Admin user already exists:", admin.Email)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		ID:           uuid.New().String(),
		FullName:     adminName,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created:", admin.Email)
}

func seedTopics() {
	topics := []models.ProjectTopic{
		{
			Title:        "E-commerce Platform",
			Description:  "Build a full-stack e-commerce platform with React and Node.js",
			Category:     models.CategoryWeb,
			Difficulty:   models.DifficultyIntermediate,
			Duration:     "8 weeks",
			Technologies: []string{"React", "Node.js", "MongoDB", "Express"},
			Complexity:   7,
			Popularity:   85,
			IsTrending:   true,
		},
		{
			Title:        "Mobile Banking App",
			Description:  "Secure mobile banking application with biometric authentication",
			Category:     models.CategoryMobile,
			Difficulty:   models.DifficultyAdvanced,
			Duration:     "10 weeks",
			Technologies: []string{"React Native", "Firebase", "Node.js", "MongoDB"},
			Complexity:   9,
			Popularity:   90,
			IsTrending:   true,
		},
		{
			Title:        "AI Chatbot",
			Description:  "Intelligent chatbot using NLP for customer service",
			Category:     models.CategoryAI,
			Difficulty:   models.DifficultyIntermediate,
			Duration:     "6 weeks",
			Technologies: []string{"Python", "TensorFlow", "FastAPI", "React"},
			Complexity:   8,
			Popularity:   88,
			IsTrending:   true,
		},
		{
			Title:        "IoT Home Automation",
			Description:  "Smart home automation system using IoT devices",
			Category:     models.CategoryIoT,
			Difficulty:   models.DifficultyIntermediate,
			Duration:     "9 weeks",
			Technologies: []string{"Arduino", "Raspberry Pi", "Python", "React Native"},
			Complexity:   7,
			Popularity:   82,
		},
		{
			Title:        "Blockchain Voting System",
			Description:  "Secure voting system using blockchain technology",
			Category:     models.CategoryBlockchain,
			Difficulty:   models.DifficultyAdvanced,
			Duration:     "12 weeks",
			Technologies: []string{"Solidity", "Ethereum", "Web3.js", "React"},
			Complexity:   9,
			Popularity:   92,
		},
		{
			Title:        "Cybersecurity Dashboard",
			Description:  "Real-time cybersecurity threat monitoring dashboard",
			Category:     models.CategoryCybersecurity,
			Difficulty:   models.DifficultyAdvanced,
			Duration:     "10 weeks",
			Technologies: []string{"Python", "Django", "React", "Docker"},
			Complexity:   8,
			Popularity:   87,
		},
	}

	created := 0
	for i := range topics {
		topic := &topics[i]
		topic.ID = uuid.New().String()
		topic.TitleKey = strings.ToLower(topic.Title)
		topic.IsActive = true
		if topic.Technologies == nil {
			topic.Technologies = []string{}
		}
		topic.LearningObjectives = []string{}
		topic.Prerequisites = []string{}
		topic.ExpectedOutcomes = []string{}

		var existing models.ProjectTopic
		if err := database.DB.Where("title_key = ?", topic.TitleKey).First(&existing).Error; err == nil {
			continue
		}

		if err := database.DB.Create(topic).Error; err != nil {
			log.Fatal("Failed to seed topic:", err)
		}
		created++
	}

	log.Printf("Seeded %d project topics", created)
}
