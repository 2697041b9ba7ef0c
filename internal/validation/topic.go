package validation

import (
	"fmt"
	"strings"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
)

// Topic runs the full set of catalog constraints against a topic record.
// Called on create and again on update after the partial merge, so every
// persisted row satisfies the same rules regardless of how it got there.
func Topic(t *models.ProjectTopic) error {
	var v Violations

	if strings.TrimSpace(t.Title) == "" {
		v = v.Add("title", "is required")
	} else if len(t.Title) > 200 {
		v = v.Add("title", "cannot exceed 200 characters")
	}

	if strings.TrimSpace(t.Description) == "" {
		v = v.Add("description", "is required")
	} else if len(t.Description) > 1000 {
		v = v.Add("description", "cannot exceed 1000 characters")
	}

	if t.Category == "" {
		v = v.Add("category", "is required")
	} else if !models.ValidCategory(t.Category) {
		v = v.Add("category", fmt.Sprintf("must be one of: %s", joinCategories()))
	}

	if t.Difficulty == "" {
		v = v.Add("difficulty", "is required")
	} else if !models.ValidDifficulty(t.Difficulty) {
		v = v.Add("difficulty", "must be: beginner, intermediate, or advanced")
	}

	if strings.TrimSpace(t.Duration) == "" {
		v = v.Add("duration", "is required")
	}

	if t.Popularity < 0 || t.Popularity > 100 {
		v = v.Add("popularity", "must be between 0 and 100")
	}
	if t.Complexity < 1 || t.Complexity > 10 {
		v = v.Add("complexity", "must be between 1 and 10")
	}
	if t.Resources < 0 {
		v = v.Add("resources", "cannot be negative")
	}

	return v.OrNil()
}

func joinCategories() string {
	parts := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
