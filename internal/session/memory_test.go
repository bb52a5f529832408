package session

import (
	"context"
	"testing"
	"time"

	"github.com/database-playground/sqlquest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestMemoryStorage(ttl time.Duration) (*MemoryStorage, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	storage := NewMemoryStorage(ttl)
	storage.now = clock.Now

	return storage, clock
}

func TestMemoryStorage_SaveGet(t *testing.T) {
	storage, _ := newTestMemoryStorage(time.Hour)
	ctx := context.Background()

	_, err := storage.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	state := State{
		ID:      "s1",
		Lessons: []models.LessonSummary{{ID: 1, Category: "Basics", Title: "Intro"}},
		Current: &models.Lesson{ID: 1, Title: "Intro"},
	}
	require.NoError(t, storage.Save(ctx, state))

	got, err := storage.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
	assert.Equal(t, 1, got.CurrentID())
}

func TestMemoryStorage_Expiry(t *testing.T) {
	storage, clock := newTestMemoryStorage(time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, State{ID: "s1"}))

	clock.now = clock.now.Add(59 * time.Minute)
	_, err := storage.Get(ctx, "s1")
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Minute)
	_, err = storage.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorage_SaveExtendsExpiry(t *testing.T) {
	storage, clock := newTestMemoryStorage(time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, State{ID: "s1"}))
	clock.now = clock.now.Add(50 * time.Minute)
	require.NoError(t, storage.Save(ctx, State{ID: "s1"}))
	clock.now = clock.now.Add(50 * time.Minute)

	_, err := storage.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestMemoryStorage_Delete(t *testing.T) {
	storage, _ := newTestMemoryStorage(0)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, State{ID: "s1"}))
	require.NoError(t, storage.BeginRun(ctx, "s1"))
	require.NoError(t, storage.Delete(ctx, "s1"))

	_, err := storage.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, storage.BeginRun(ctx, "s1"))
}

func TestMemoryStorage_RunGuard(t *testing.T) {
	storage, clock := newTestMemoryStorage(time.Hour)
	ctx := context.Background()

	require.NoError(t, storage.BeginRun(ctx, "s1"))
	assert.ErrorIs(t, storage.BeginRun(ctx, "s1"), ErrBusy)

	// other sessions are independent
	assert.NoError(t, storage.BeginRun(ctx, "s2"))

	require.NoError(t, storage.EndRun(ctx, "s1"))
	assert.NoError(t, storage.BeginRun(ctx, "s1"))

	clock.now = clock.now.Add(RunGuardTTL)
	assert.NoError(t, storage.BeginRun(ctx, "s2"), "stale guard should expire")
}

func TestMemoryStorage_SweepInterval(t *testing.T) {
	storage, clock := newTestMemoryStorage(10 * time.Second)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, State{ID: "a"}))
	require.NoError(t, storage.BeginRun(ctx, "a"))

	clock.now = clock.now.Add(20 * time.Second)
	require.NoError(t, storage.Save(ctx, State{ID: "b"}))
	assert.Len(t, storage.entries, 2, "expired entries are kept until the next sweep")

	_, err := storage.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	clock.now = clock.now.Add(RunGuardTTL)
	require.NoError(t, storage.Save(ctx, State{ID: "c"}))
	assert.Len(t, storage.entries, 1)
	assert.Contains(t, storage.entries, "c")
	assert.Empty(t, storage.running)
}

func TestState_CurrentIDWithoutLesson(t *testing.T) {
	assert.Equal(t, 0, State{}.CurrentID())
}
