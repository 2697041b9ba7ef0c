package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryWeb           Category = "web"
	CategoryMobile        Category = "mobile"
	CategoryAI            Category = "ai"
	CategoryData          Category = "data"
	CategoryIoT           Category = "iot"
	CategoryBlockchain    Category = "blockchain"
	CategoryCybersecurity Category = "cybersecurity"
)

// Categories lists every allowed topic category, in declaration order.
var Categories = []Category{
	CategoryWeb, CategoryMobile, CategoryAI, CategoryData,
	CategoryIoT, CategoryBlockchain, CategoryCybersecurity,
}

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ProjectTopic is a catalog entry students can pick for a proposal.
// String lists persist as JSON columns (serializer:json) so the record
// stays a single row, the way the original document kept a single doc.
type ProjectTopic struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	// TitleKey is Title lowercased; its unique index backs the
	// case-insensitive uniqueness pre-check against write races.
	TitleKey           string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"-"`
	Description        string     `gorm:"type:varchar(1000);not null" json:"description"`
	Category           Category   `gorm:"type:varchar(20);not null;index:idx_topics_browse" json:"category"`
	Difficulty         Difficulty `gorm:"type:varchar(20);not null;index:idx_topics_browse" json:"difficulty"`
	Duration           string     `gorm:"type:varchar(50);not null" json:"duration"`
	Popularity         int        `gorm:"not null;default:0" json:"popularity"`
	IsTrending         bool       `gorm:"not null;default:false" json:"isTrending"`
	Technologies       []string   `gorm:"serializer:json" json:"technologies"`
	Resources          int        `gorm:"not null;default:0" json:"resources"`
	Complexity         int        `gorm:"not null;default:1" json:"complexity"`
	Image              string     `gorm:"type:text" json:"image"`
	LearningObjectives []string   `gorm:"serializer:json" json:"learningObjectives"`
	Prerequisites      []string   `gorm:"serializer:json" json:"prerequisites"`
	ExpectedOutcomes   []string   `gorm:"serializer:json" json:"expectedOutcomes"`
	IsActive           bool       `gorm:"not null;default:true;index:idx_topics_browse" json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// NormalizeTitleKey keeps TitleKey in sync with Title.
func (t *ProjectTopic) NormalizeTitleKey() {
	t.TitleKey = strings.ToLower(strings.TrimSpace(t.Title))
}

// TopicSummary is the reduced projection used by the category view.
type TopicSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Duration    string     `json:"duration"`
	Popularity  int        `json:"popularity"`
	Image       string     `json:"image"`
}

// TrendingTopic is the reduced projection used by the trending view.
type TrendingTopic struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Popularity  int        `json:"popularity"`
	Image       string     `json:"image"`
	IsTrending  bool       `json:"isTrending"`
}

func (t *ProjectTopic) Summary() TopicSummary {
	return TopicSummary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Difficulty:  t.Difficulty,
		Duration:    t.Duration,
		Popularity:  t.Popularity,
		Image:       t.Image,
	}
}

func (t *ProjectTopic) Trending() TrendingTopic {
	return TrendingTopic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Difficulty:  t.Difficulty,
		Popularity:  t.Popularity,
		Image:       t.Image,
		IsTrending:  t.IsTrending,
	}
}
