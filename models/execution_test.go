package models

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, body string) ExecutionResponse {
	t.Helper()

	decoder := json.NewDecoder(bytes.NewBufferString(body))
	decoder.UseNumber()

	var resp ExecutionResponse
	require.NoError(t, decoder.Decode(&resp))

	return resp
}

func TestClassify(t *testing.T) {
	t.Run("multi statement flag", func(t *testing.T) {
		resp := decodeResponse(t, `{"success":false,"multiStatement":true,"totalStatements":3,"executedStatements":2,"stopped":true,"results":[{"statementNumber":1,"statement":"SELECT 1","success":true,"data":[]},{"statementNumber":2,"statement":"SELEC","success":false,"error":"syntax error"}]}`)

		result := Classify(http.StatusOK, resp)

		batch, ok := result.(BatchResult)
		require.True(t, ok, "expected BatchResult, got %T", result)
		assert.True(t, batch.MultiStatement)
		assert.True(t, batch.Stopped)
		assert.Equal(t, 3, batch.TotalStatements)
		assert.Equal(t, 2, batch.ExecutedStatements)
		require.Len(t, batch.Results, 2)
		assert.NotNil(t, batch.Results[0].Data)
		assert.Empty(t, batch.Results[0].Data)
		assert.Equal(t, "syntax error", batch.Results[1].Error)
	})

	t.Run("results without flag", func(t *testing.T) {
		resp := decodeResponse(t, `{"success":true,"multiStatement":false,"results":[{"statementNumber":1,"statement":"UPDATE x SET y = 1","success":true,"message":"Success"}]}`)

		batch, ok := Classify(http.StatusOK, resp).(BatchResult)
		require.True(t, ok)
		assert.False(t, batch.MultiStatement)
		require.Len(t, batch.Results, 1)
		assert.Nil(t, batch.Results[0].Data)
	})

	t.Run("legacy with data", func(t *testing.T) {
		resp := decodeResponse(t, `{"success":true,"columns":["id","name"],"data":[{"id":1,"name":"Pikachu"}],"rowCount":1}`)

		legacy, ok := Classify(http.StatusOK, resp).(LegacyResult)
		require.True(t, ok)
		assert.Equal(t, []string{"id", "name"}, legacy.Columns)
		require.Len(t, legacy.Data, 1)
		assert.Equal(t, json.Number("1"), legacy.Data[0]["id"])
		assert.Equal(t, 1, RowCountOf(legacy.RowCount, legacy.Data))
	})

	t.Run("legacy without anything", func(t *testing.T) {
		legacy, ok := Classify(http.StatusOK, decodeResponse(t, `{"success":true}`)).(LegacyResult)
		require.True(t, ok)
		assert.Nil(t, legacy.Data)
		assert.Empty(t, legacy.Message)
	})

	t.Run("in-band failure", func(t *testing.T) {
		failure, ok := Classify(http.StatusOK, decodeResponse(t, `{"success":false,"error":"no such table: x"}`)).(FailureResult)
		require.True(t, ok)
		assert.Equal(t, "no such table: x", failure.Message)
	})

	t.Run("non-2xx with error", func(t *testing.T) {
		failure, ok := Classify(http.StatusBadRequest, decodeResponse(t, `{"error":"Too many statements. Max 15."}`)).(FailureResult)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, failure.Status)
		assert.Equal(t, "Too many statements. Max 15.", failure.Message)
	})

	t.Run("non-2xx without error", func(t *testing.T) {
		failure, ok := Classify(http.StatusInternalServerError, ExecutionResponse{}).(FailureResult)
		require.True(t, ok)
		assert.Equal(t, DefaultExecutionError, failure.Message)
	})
}

func TestRowCountOf(t *testing.T) {
	count := 7

	assert.Equal(t, 7, RowCountOf(&count, nil))
	assert.Equal(t, 2, RowCountOf(nil, []Row{{}, {}}))
	assert.Equal(t, 0, RowCountOf(nil, nil))
}

func TestLesson_Example(t *testing.T) {
	lesson := Lesson{
		ID: 4,
		Content: LessonContent{
			Examples: []Example{{Title: "Create", Query: "CREATE TABLE moves (id INTEGER);"}},
		},
	}

	example, ok := lesson.Example(0)
	assert.True(t, ok)
	assert.Equal(t, "CREATE TABLE moves (id INTEGER);", example.Query)

	_, ok = lesson.Example(1)
	assert.False(t, ok)

	_, ok = lesson.Example(-1)
	assert.False(t, ok)

	assert.Equal(t, LessonSummary{ID: 4}, lesson.Summary())
}
