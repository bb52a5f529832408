package devapi

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/database-playground/sqlquest/models"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed lessons.yaml
var embeddedLessons []byte

// Catalogue is the read-only set of lessons served by the API.
type Catalogue struct {
	lessons []models.Lesson
}

// LoadCatalogue reads the lessons from path, or the built-in lessons
// when path is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	content := embeddedLessons
	if path != "" {
		var err error
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read lessons file: %w", err)
		}
	}

	return ParseCatalogue(content)
}

// ParseCatalogue parses a YAML list of lessons.
func ParseCatalogue(content []byte) (*Catalogue, error) {
	var lessons []models.Lesson
	if err := yaml.Unmarshal(content, &lessons); err != nil {
		return nil, fmt.Errorf("parse lessons: %w", err)
	}

	seen := make(map[int]struct{}, len(lessons))
	for _, lesson := range lessons {
		if _, ok := seen[lesson.ID]; ok {
			return nil, fmt.Errorf("duplicate lesson id %d", lesson.ID)
		}
		seen[lesson.ID] = struct{}{}
	}

	return &Catalogue{lessons: lessons}, nil
}

// List returns the summaries of all lessons in catalogue order.
func (c *Catalogue) List() []models.LessonSummary {
	return lo.Map(c.lessons, func(lesson models.Lesson, _ int) models.LessonSummary {
		return lesson.Summary()
	})
}

// Get returns the lesson with the given ID.
func (c *Catalogue) Get(id int) (models.Lesson, bool) {
	return lo.Find(c.lessons, func(lesson models.Lesson) bool {
		return lesson.ID == id
	})
}
