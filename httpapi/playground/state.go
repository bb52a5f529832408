package playground

import (
	"context"
	"errors"
	"html/template"
	"log/slog"

	"github.com/database-playground/sqlquest/internal/httputils"
	"github.com/database-playground/sqlquest/internal/render"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/gin-gonic/gin"
)

// loadState returns the state of the visitor, or a fresh one when the
// visitor has none yet.
func (s *Service) loadState(ctx context.Context) session.State {
	sessionID, ok := httputils.GetSessionID(ctx)
	if !ok {
		slog.WarnContext(ctx, "request without session, state will not persist")
		return session.State{}
	}

	state, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to load session", "session_id", sessionID, "error", err)
		}

		return session.State{ID: sessionID}
	}

	return state
}

func (s *Service) saveState(ctx context.Context, state session.State) {
	if state.ID == "" {
		return
	}

	if err := s.storage.Save(ctx, state); err != nil {
		slog.ErrorContext(ctx, "failed to save session", "session_id", state.ID, "error", err)
	}
}

// pageData builds the template data for the state. activeID is the
// lesson highlighted in the navigation.
func pageData(state session.State, activeID int, editor string, results template.HTML) render.PageData {
	data := render.PageData{
		Nav:     render.Navigation(state.Lessons, activeID),
		Editor:  editor,
		Results: results,
	}

	if state.Current != nil {
		view := render.Lesson(*state.Current)
		data.Lesson = &view
	}

	return data
}

// respond writes the full page, or only the named fragment when the
// request came from htmx.
func respond(c *gin.Context, status int, fragment string, data render.PageData) {
	if httputils.IsFragmentRequest(c) {
		data.Fragment = true
		c.HTML(status, fragment, data)
		return
	}

	c.HTML(status, render.TemplatePage, data)
}
