package apiclient

import (
	"fmt"

	"github.com/database-playground/sqlquest/models"
)

// LessonsResponse is the response of GET /lessons.
type LessonsResponse struct {
	Success bool                   `json:"success"`
	Lessons []models.LessonSummary `json:"lessons"`
	Error   string                 `json:"error,omitempty"`
}

// LessonResponse is the response of GET /lessons/:id.
type LessonResponse struct {
	Success bool           `json:"success"`
	Lesson  *models.Lesson `json:"lesson,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ErrorResponse is an application-level failure reported by the API,
// either with success = false or with a non-2xx status.
type ErrorResponse struct {
	Status  int
	Message string
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}
