// Package events reports what visitors do in the playground to PostHog.
package events

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/database-playground/sqlquest/internal/workers"
	"github.com/posthog/posthog-go"
)

// Enqueuer is the part of posthog.Client the service needs.
type Enqueuer interface {
	Enqueue(msg posthog.Message) error
}

// EventService is the service for triggering events.
//
// A nil Enqueuer disables the reporting.
type EventService struct {
	client Enqueuer
	worker *workers.Worker
}

// NewEventService creates a new EventService.
func NewEventService(client Enqueuer) *EventService {
	return &EventService{
		client: client,
		worker: workers.Global,
	}
}

// Event is the event to be triggered.
type Event struct {
	Type       EventType
	SessionID  string
	Properties map[string]any
}

// TriggerEvent triggers an event in the background.
func (s *EventService) TriggerEvent(ctx context.Context, event Event) {
	if s == nil || s.client == nil {
		return
	}

	timestamp := time.Now()
	s.worker.Go(string(event.Type), func() {
		if err := s.triggerEvent(event, timestamp); err != nil {
			slog.ErrorContext(ctx, "failed to trigger event", "event_type", event.Type, "error", err)
		}
	})
}

// LessonViewed reports that a lesson was displayed.
func (s *EventService) LessonViewed(ctx context.Context, sessionID string, lessonID int) {
	s.TriggerEvent(ctx, Event{
		Type:      EventTypeLessonViewed,
		SessionID: sessionID,
		Properties: map[string]any{
			"lessonID": strconv.Itoa(lessonID),
		},
	})
}

// ExampleLoaded reports that an example was copied into the editor.
func (s *EventService) ExampleLoaded(ctx context.Context, sessionID string, lessonID, index int) {
	s.TriggerEvent(ctx, Event{
		Type:      EventTypeExampleLoaded,
		SessionID: sessionID,
		Properties: map[string]any{
			"lessonID": strconv.Itoa(lessonID),
			"index":    index,
		},
	})
}

// QueryExecuted reports the outcome of a query execution.
func (s *EventService) QueryExecuted(ctx context.Context, sessionID string, lessonID int, outcome string) {
	s.TriggerEvent(ctx, Event{
		Type:      EventTypeQueryExecuted,
		SessionID: sessionID,
		Properties: map[string]any{
			"lessonID": strconv.Itoa(lessonID),
			"outcome":  outcome,
		},
	})
}

func (s *EventService) triggerEvent(event Event, timestamp time.Time) error {
	properties := posthog.NewProperties()
	for key, value := range event.Properties {
		properties.Set(key, value)
	}

	slog.Debug("sending event to PostHog", "event_type", event.Type, "session_id", event.SessionID)

	return s.client.Enqueue(posthog.Capture{
		DistinctId: event.SessionID,
		Event:      string(event.Type),
		Timestamp:  timestamp,
		Properties: properties,
	})
}
