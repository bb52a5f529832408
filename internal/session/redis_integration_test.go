package session

import (
	"context"
	"testing"
	"time"

	"github.com/database-playground/sqlquest/internal/testhelper"
	"github.com/database-playground/sqlquest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorage_Integration(t *testing.T) {
	container := testhelper.NewRedisContainer(t)
	redisClient := testhelper.NewRedisClient(t, container)

	storage := NewRedisStorage(redisClient, time.Minute)
	ctx := context.Background()

	_, err := storage.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	state := State{
		ID:      "visitor-1",
		Lessons: []models.LessonSummary{{ID: 1, Category: "Basics", Title: "Intro"}, {ID: 2, Category: "Basics", Title: "Tables"}},
		Current: &models.Lesson{
			ID:    2,
			Title: "Tables",
			Content: models.LessonContent{
				Examples: []models.Example{{Title: "One", Query: "SELECT 1;"}},
			},
		},
	}
	require.NoError(t, storage.Save(ctx, state))

	got, err := storage.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	ttl := redisClient.Do(ctx, redisClient.B().Ttl().Key(redisStatePrefix+"visitor-1").Build())
	seconds, err := ttl.AsInt64()
	require.NoError(t, err)
	assert.Positive(t, seconds)
	assert.LessOrEqual(t, seconds, int64(60))

	// run guard
	require.NoError(t, storage.BeginRun(ctx, "visitor-1"))
	assert.ErrorIs(t, storage.BeginRun(ctx, "visitor-1"), ErrBusy)
	assert.NoError(t, storage.BeginRun(ctx, "visitor-2"))
	require.NoError(t, storage.EndRun(ctx, "visitor-1"))
	assert.NoError(t, storage.BeginRun(ctx, "visitor-1"))

	// delete clears both the state and the guard
	require.NoError(t, storage.Delete(ctx, "visitor-1"))
	_, err = storage.Get(ctx, "visitor-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, storage.BeginRun(ctx, "visitor-1"))
}
