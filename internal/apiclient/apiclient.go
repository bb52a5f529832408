// Package apiclient talks to the lesson and query-execution API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/metrics"
	"github.com/database-playground/sqlquest/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

var tracer = metrics.Tracer("apiclient")

// Client is the client of the lesson and query-execution API.
//
// It does not retry: every failure is returned to the caller.
type Client struct {
	client *http.Client
	cfg    config.APIConfig
}

// New creates a Client. cfg.BaseURL must already be resolved.
func New(cfg config.APIConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}
}

// ListLessons fetches the lesson list.
func (c *Client) ListLessons(ctx context.Context) ([]models.LessonSummary, error) {
	ctx, span := tracer.Start(ctx, "Client.ListLessons")
	defer span.End()

	var body LessonsResponse
	status, err := c.do(ctx, "lessons", http.MethodGet, "/lessons", nil, &body)
	if err != nil {
		span.SetStatus(otelcodes.Error, "failed to list lessons")
		span.RecordError(err)
		return nil, err
	}

	if !isSuccess(status) || !body.Success {
		return nil, &ErrorResponse{Status: status, Message: body.Error}
	}

	span.SetAttributes(attribute.Int("lessons.count", len(body.Lessons)))
	return body.Lessons, nil
}

// GetLesson fetches the lesson with the given ID.
func (c *Client) GetLesson(ctx context.Context, id int) (models.Lesson, error) {
	ctx, span := tracer.Start(ctx, "Client.GetLesson")
	defer span.End()
	span.SetAttributes(attribute.Int("lesson.id", id))

	var body LessonResponse
	status, err := c.do(ctx, "lesson", http.MethodGet, "/lessons/"+strconv.Itoa(id), nil, &body)
	if err != nil {
		span.SetStatus(otelcodes.Error, "failed to get lesson")
		span.RecordError(err)
		return models.Lesson{}, err
	}

	if !isSuccess(status) || !body.Success {
		return models.Lesson{}, &ErrorResponse{Status: status, Message: body.Error}
	}

	if body.Lesson == nil {
		return models.Lesson{}, fmt.Errorf("lesson %d: response has no lesson", id)
	}

	return *body.Lesson, nil
}

// Execute submits a query.
//
// In-band failures and non-2xx responses are not errors: they come back
// as a models.FailureResult. The error is only set when the request
// could not be sent or the response could not be read.
func (c *Client) Execute(ctx context.Context, query string) (models.ExecutionResult, error) {
	ctx, span := tracer.Start(ctx, "Client.Execute")
	defer span.End()

	payload, err := json.Marshal(models.ExecuteRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	var body models.ExecutionResponse
	status, err := c.do(ctx, "execute", http.MethodPost, "/execute", payload, &body)
	if err != nil {
		span.SetStatus(otelcodes.Error, "failed to execute query")
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", status))
	return models.Classify(status, body), nil
}

// IsHealthy reports whether the API answers its health check.
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}()

	return resp.StatusCode == http.StatusOK
}

// do sends a request and decodes the JSON response into out, whatever
// the status code. Numbers are decoded as json.Number.
func (c *Client) do(ctx context.Context, endpoint, method, path string, payload []byte, out any) (int, error) {
	defer metrics.ObserveAPIRequest(endpoint, time.Now())

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}()

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("bad response (status %d): %w", resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
