package playground

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/database-playground/sqlquest/internal/metrics"
	"github.com/database-playground/sqlquest/internal/render"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/database-playground/sqlquest/models"
	"github.com/gin-gonic/gin"
)

// Run executes the query in the editor and shows its results.
//
// One query can be in flight per session; a second submission is
// rejected until the first one completes.
func (s *Service) Run(c *gin.Context) {
	ctx := c.Request.Context()
	state := s.loadState(ctx)

	editor := c.PostForm("query")
	reply := func(status int, results template.HTML) {
		respond(c, status, render.TemplateResults, pageData(state, state.CurrentID(), editor, results))
	}

	query := strings.TrimSpace(editor)
	if query == "" {
		reply(http.StatusBadRequest, render.ErrorMessage(MessageEmptyQuery))
		return
	}

	if state.ID != "" {
		if err := s.storage.BeginRun(ctx, state.ID); err != nil {
			if errors.Is(err, session.ErrBusy) {
				reply(http.StatusConflict, render.ErrorMessage(MessageRunBusy))
				return
			}

			slog.ErrorContext(ctx, "failed to acquire run guard", "session_id", state.ID, "error", err)
			reply(http.StatusInternalServerError, render.ErrorMessage(MessageRunFailed))
			return
		}

		defer func() {
			if err := s.storage.EndRun(context.WithoutCancel(ctx), state.ID); err != nil {
				slog.ErrorContext(ctx, "failed to release run guard", "session_id", state.ID, "error", err)
			}
		}()
	}

	result, err := s.api.Execute(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to execute query", "error", err)

		metrics.RecordExecution(metrics.OutcomeTransportError)
		s.events.QueryExecuted(ctx, state.ID, state.CurrentID(), metrics.OutcomeTransportError)

		reply(http.StatusBadGateway, render.ErrorMessage(MessageRunFailed))
		return
	}

	outcome := recordResult(result)
	s.events.QueryExecuted(ctx, state.ID, state.CurrentID(), outcome)

	reply(http.StatusOK, render.ExecutionResult(result))
}

// recordResult updates the execution metrics and returns the outcome of
// the execution.
func recordResult(result models.ExecutionResult) string {
	outcome := metrics.OutcomeSuccess

	switch result := result.(type) {
	case models.BatchResult:
		for _, statement := range result.Results {
			metrics.RecordStatement(statement.Success)
		}
		if result.Stopped {
			outcome = metrics.OutcomeStopped
		}
	case models.FailureResult:
		outcome = metrics.OutcomeRejected
	}

	metrics.RecordExecution(outcome)
	return outcome
}
