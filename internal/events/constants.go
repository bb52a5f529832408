package events

type EventType string

const (
	EventTypeLessonViewed  EventType = "lesson_viewed"
	EventTypeExampleLoaded EventType = "example_loaded"
	EventTypeQueryExecuted EventType = "query_executed"
)
