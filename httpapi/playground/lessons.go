package playground

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/database-playground/sqlquest/internal/apiclient"
	"github.com/database-playground/sqlquest/internal/httputils"
	"github.com/database-playground/sqlquest/internal/metrics"
	"github.com/database-playground/sqlquest/internal/render"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/gin-gonic/gin"
)

// Index loads the lesson list and shows the first lesson.
func (s *Service) Index(c *gin.Context) {
	ctx := c.Request.Context()
	state := s.loadState(ctx)

	lessons, err := s.api.ListLessons(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list lessons", "error", err)
		respond(c, http.StatusBadGateway, render.TemplateLesson,
			pageData(session.State{}, 0, "", render.ErrorMessage(MessageLessonsFailed)))
		return
	}

	state.Lessons = lessons
	state.Current = nil

	if len(lessons) == 0 {
		s.saveState(ctx, state)
		respond(c, http.StatusOK, render.TemplateLesson, pageData(state, 0, "", render.Placeholder()))
		return
	}

	s.showLesson(c, state, lessons[0].ID)
}

// ShowLesson navigates to a lesson. The editor is cleared and the
// results are reset.
func (s *Service) ShowLesson(c *gin.Context) {
	state := s.loadState(c.Request.Context())

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, http.StatusNotFound, render.TemplateLesson,
			pageData(state, state.CurrentID(), "", render.ErrorMessage(MessageLessonFailed)))
		return
	}

	if len(state.Lessons) == 0 {
		// deep link into a lesson before the list was ever loaded
		lessons, err := s.api.ListLessons(c.Request.Context())
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to list lessons", "error", err)
		}
		state.Lessons = lessons
	}

	s.showLesson(c, state, id)
}

func (s *Service) showLesson(c *gin.Context, state session.State, id int) {
	ctx := c.Request.Context()

	lesson, err := s.api.GetLesson(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load lesson", "lesson_id", id, "error", err)

		status, message := lessonFailure(err)
		s.saveState(ctx, state)
		respond(c, status, render.TemplateLesson, pageData(state, id, "", render.ErrorMessage(message)))
		return
	}

	state.Current = &lesson
	s.saveState(ctx, state)

	metrics.RecordLessonView(lesson.ID)
	s.events.LessonViewed(ctx, state.ID, lesson.ID)

	respond(c, http.StatusOK, render.TemplateLesson, pageData(state, lesson.ID, "", render.Placeholder()))
}

// lessonFailure maps a GetLesson error to the response status and the
// message to show.
func lessonFailure(err error) (int, string) {
	var apiErr *apiclient.ErrorResponse
	if !errors.As(err, &apiErr) {
		return http.StatusBadGateway, MessageLessonFailed
	}

	status := http.StatusBadGateway
	if apiErr.Status == http.StatusNotFound {
		status = http.StatusNotFound
	}

	message := apiErr.Message
	if message == "" {
		message = MessageLessonFailed
	}

	return status, message
}

// LoadExample copies the query of an example into the editor.
func (s *Service) LoadExample(c *gin.Context) {
	ctx := c.Request.Context()
	state := s.loadState(ctx)

	id, idErr := strconv.Atoi(c.Param("id"))
	index, indexErr := strconv.Atoi(c.Param("index"))
	if idErr != nil || indexErr != nil {
		respond(c, http.StatusNotFound, render.TemplateEditor, pageData(state, state.CurrentID(), "", render.Placeholder()))
		return
	}

	if state.Current == nil || state.Current.ID != id {
		lesson, err := s.api.GetLesson(ctx, id)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load lesson", "lesson_id", id, "error", err)

			status, message := lessonFailure(err)
			respond(c, status, render.TemplateEditor, pageData(state, state.CurrentID(), "", render.ErrorMessage(message)))
			return
		}

		state.Current = &lesson
		s.saveState(ctx, state)
	}

	var editor string
	if example, ok := state.Current.Example(index); ok {
		editor = example.Query

		metrics.RecordExampleLoad()
		s.events.ExampleLoaded(ctx, state.ID, id, index)
	}

	// the results panel is left as it is when only the editor is swapped
	results := render.Placeholder()
	if httputils.IsFragmentRequest(c) {
		results = ""
	}

	respond(c, http.StatusOK, render.TemplateEditor, pageData(state, id, editor, results))
}
