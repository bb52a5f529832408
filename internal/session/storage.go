// Package session keeps the per-visitor state of the playground: the
// lesson list, the lesson being shown and whether a query is running.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/database-playground/sqlquest/models"
)

var (
	// ErrNotFound is returned when there is no state for the session.
	ErrNotFound = errors.New("no such session")

	// ErrBusy is returned by BeginRun when a query is already running in
	// the session.
	ErrBusy = errors.New("a query is already running")
)

// DefaultTTL is the default lifetime of a session since its last save.
const DefaultTTL = 8 * time.Hour

// RunGuardTTL bounds how long a run guard can be held. A guard left
// behind by a crashed request expires after it.
const RunGuardTTL = 2 * time.Minute

// State is the state of one visitor.
//
// Current is replaced wholesale on every navigation, never merged.
type State struct {
	ID      string                 `json:"id"`
	Lessons []models.LessonSummary `json:"lessons"`
	Current *models.Lesson         `json:"current,omitempty"`
}

// CurrentID returns the ID of the current lesson, or 0 when there is none.
func (s State) CurrentID() int {
	if s.Current == nil {
		return 0
	}

	return s.Current.ID
}

// Storage is the storage of the session state.
type Storage interface {
	// Get the state of the given session.
	//
	// Error is implementation-defined except for ErrNotFound.
	// ErrNotFound is returned when the session has no state.
	Get(ctx context.Context, id string) (State, error)

	// Save the state and extend its expiration time.
	Save(ctx context.Context, state State) error

	// Delete the state of the given session.
	Delete(ctx context.Context, id string) error

	// BeginRun marks a query as running in the given session.
	//
	// It returns ErrBusy when a query is already running.
	BeginRun(ctx context.Context, id string) error

	// EndRun clears the running mark set by BeginRun.
	EndRun(ctx context.Context, id string) error
}
