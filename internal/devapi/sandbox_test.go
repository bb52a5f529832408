package devapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox_Select(t *testing.T) {
	resp, err := NewSandbox().Run(context.Background(), []string{
		"SELECT name, type, sprite_url FROM pokemon WHERE type = 'Electric'",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.MultiStatement)
	assert.False(t, resp.Stopped)
	assert.Equal(t, 1, resp.TotalStatements)
	assert.Equal(t, 1, resp.ExecutedStatements)
	require.Len(t, resp.Results, 1)

	result := resp.Results[0]
	assert.Equal(t, 1, result.StatementNumber)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"name", "type", "sprite_url"}, result.Columns)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Pikachu", result.Data[0]["name"])
	assert.Equal(t, "Electric", result.Data[0]["type"])
	require.NotNil(t, result.RowCount)
	assert.Equal(t, 1, *result.RowCount)
}

func TestSandbox_EmptyResultSet(t *testing.T) {
	resp, err := NewSandbox().Run(context.Background(), []string{
		"SELECT * FROM pokemon WHERE level > 1000",
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.NotNil(t, resp.Results[0].Data)
	assert.Empty(t, resp.Results[0].Data)
	assert.Equal(t, 0, *resp.Results[0].RowCount)
}

func TestSandbox_Batch(t *testing.T) {
	resp, err := NewSandbox().Run(context.Background(), []string{
		"INSERT INTO trainers (name, hometown) VALUES ('Red', 'Pallet Town')",
		"UPDATE pokemon SET level = level + 1 WHERE trainer_id = 1",
		"SELECT COUNT(*) AS total FROM trainers",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.MultiStatement)
	assert.Equal(t, 3, resp.TotalStatements)
	assert.Equal(t, 3, resp.ExecutedStatements)

	assert.Equal(t, "Success", resp.Results[0].Message)
	assert.Equal(t, 1, *resp.Results[0].RowCount)
	assert.Nil(t, resp.Results[0].Data)

	assert.Equal(t, 4, *resp.Results[1].RowCount)

	assert.EqualValues(t, 5, resp.Results[2].Data[0]["total"])
}

func TestSandbox_StopsAtFirstFailure(t *testing.T) {
	resp, err := NewSandbox().Run(context.Background(), []string{
		"SELECT 1",
		"SELECT * FROM missing_table",
		"SELECT 2",
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.True(t, resp.Stopped)
	assert.Equal(t, 3, resp.TotalStatements)
	assert.Equal(t, 2, resp.ExecutedStatements)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[1].Success)
	assert.Contains(t, resp.Results[1].Error, "no such table")
}

func TestSandbox_Isolated(t *testing.T) {
	sandbox := NewSandbox()

	_, err := sandbox.Run(context.Background(), []string{"DELETE FROM items"})
	require.NoError(t, err)

	resp, err := sandbox.Run(context.Background(), []string{"SELECT * FROM items"})
	require.NoError(t, err)
	assert.Len(t, resp.Results[0].Data, 8)
}
