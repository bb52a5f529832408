package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/database-playground/sqlquest/internal/termview"
	"github.com/database-playground/sqlquest/models"
)

var (
	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("no query provided")
	// ErrExampleNotFound is returned when a lesson has no example at the index.
	ErrExampleNotFound = errors.New("example not found")
	// ErrExecutionFailed is returned when the query was rejected or a
	// statement failed. The results are printed before it is returned.
	ErrExecutionFailed = errors.New("query execution failed")
)

// RunQuery executes the query and prints the results.
func (c *Context) RunQuery(ctx context.Context, w io.Writer, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	result, err := c.api.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	if _, err := fmt.Fprint(w, termview.Result(result)); err != nil {
		return err
	}

	switch r := result.(type) {
	case models.FailureResult:
		return ErrExecutionFailed
	case models.BatchResult:
		if r.Stopped {
			return ErrExecutionFailed
		}
	}

	return nil
}

// RunExample executes the example at index (0-based) of a lesson.
func (c *Context) RunExample(ctx context.Context, w io.Writer, lessonID, index int) error {
	lesson, err := c.api.GetLesson(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("get lesson %d: %w", lessonID, err)
	}

	example, ok := lesson.Example(index)
	if !ok {
		return fmt.Errorf("lesson %d example %d: %w", lessonID, index+1, ErrExampleNotFound)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", example.Title, example.Query); err != nil {
		return err
	}

	return c.RunQuery(ctx, w, example.Query)
}
