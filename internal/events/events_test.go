package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/database-playground/sqlquest/internal/workers"
	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	mu       sync.Mutex
	messages []posthog.Message
	err      error
}

func (f *fakeEnqueuer) Enqueue(msg posthog.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, msg)
	return f.err
}

func newTestEventService(client Enqueuer) (*EventService, *workers.Worker) {
	worker := workers.NewWorker()

	svc := NewEventService(client)
	svc.worker = worker

	return svc, worker
}

func TestEventService_LessonViewed(t *testing.T) {
	client := &fakeEnqueuer{}
	svc, worker := newTestEventService(client)

	svc.LessonViewed(context.Background(), "session-1", 3)
	worker.Wait()

	require.Len(t, client.messages, 1)
	capture, ok := client.messages[0].(posthog.Capture)
	require.True(t, ok)
	assert.Equal(t, "session-1", capture.DistinctId)
	assert.Equal(t, string(EventTypeLessonViewed), capture.Event)
	assert.Equal(t, "3", capture.Properties["lessonID"])
	assert.False(t, capture.Timestamp.IsZero())
}

func TestEventService_ExampleLoadedAndQueryExecuted(t *testing.T) {
	client := &fakeEnqueuer{}
	svc, worker := newTestEventService(client)

	svc.ExampleLoaded(context.Background(), "s", 2, 1)
	svc.QueryExecuted(context.Background(), "s", 2, "success")
	worker.Wait()

	require.Len(t, client.messages, 2)

	events := map[string]posthog.Capture{}
	for _, msg := range client.messages {
		capture := msg.(posthog.Capture)
		events[capture.Event] = capture
	}

	assert.Equal(t, 1, events[string(EventTypeExampleLoaded)].Properties["index"])
	assert.Equal(t, "success", events[string(EventTypeQueryExecuted)].Properties["outcome"])
}

func TestEventService_EnqueueErrorIsLogged(t *testing.T) {
	client := &fakeEnqueuer{err: errors.New("queue full")}
	svc, worker := newTestEventService(client)

	assert.NotPanics(t, func() {
		svc.LessonViewed(context.Background(), "s", 1)
		worker.Wait()
	})
	assert.Len(t, client.messages, 1)
}

func TestEventService_Disabled(t *testing.T) {
	var nilService *EventService
	assert.NotPanics(t, func() {
		nilService.LessonViewed(context.Background(), "s", 1)
	})

	svc := NewEventService(nil)
	assert.NotPanics(t, func() {
		svc.QueryExecuted(context.Background(), "s", 1, "success")
	})
}
