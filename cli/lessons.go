package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/database-playground/sqlquest/internal/termview"
)

// ListLessons prints the lesson list grouped by category.
func (c *Context) ListLessons(ctx context.Context, w io.Writer) error {
	lessons, err := c.api.ListLessons(ctx)
	if err != nil {
		return fmt.Errorf("list lessons: %w", err)
	}

	_, err = fmt.Fprint(w, termview.LessonList(lessons))
	return err
}

// ShowLesson prints a lesson with its theory and examples.
func (c *Context) ShowLesson(ctx context.Context, w io.Writer, id int) error {
	lesson, err := c.api.GetLesson(ctx, id)
	if err != nil {
		return fmt.Errorf("get lesson %d: %w", id, err)
	}

	_, err = fmt.Fprint(w, termview.Lesson(lesson))
	return err
}
