package termview

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/database-playground/sqlquest/models"
	"github.com/stretchr/testify/assert"
)

func TestLessonList(t *testing.T) {
	out := LessonList([]models.LessonSummary{
		{ID: 1, Category: "Basics", Title: "Selecting"},
		{ID: 2, Category: "Basics", Title: "Filtering"},
		{ID: 3, Category: "Joins", Title: "Inner joins"},
	})

	assert.Equal(t, 1, strings.Count(out, "Basics"))
	assert.Contains(t, out, "1. Selecting")
	assert.Contains(t, out, "3. Inner joins")
	assert.Less(t, strings.Index(out, "Filtering"), strings.Index(out, "Joins"))
}

func TestLessonList_Empty(t *testing.T) {
	assert.Contains(t, LessonList(nil), "No lessons available.")
}

func TestLesson(t *testing.T) {
	out := Lesson(models.Lesson{
		Title:    "Selecting",
		Category: "Basics",
		Content: models.LessonContent{
			Description: "Reading rows.",
			Theory:      "Use **SELECT**.",
			Examples: []models.Example{
				{Title: "All", Description: "Every pokemon.", Query: "SELECT * FROM pokemon;", Explanation: "Star selects every column."},
			},
		},
	})

	assert.Contains(t, out, "Selecting")
	assert.Contains(t, out, "Reading rows.")
	assert.Contains(t, out, "Use SELECT.")
	assert.Contains(t, out, "Example 1: All")
	assert.Contains(t, out, "    SELECT * FROM pokemon;")
	assert.Contains(t, out, "Star selects every column.")
}

func TestTheory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "bold and code spans",
			in:   "Use **SELECT** with `WHERE`.",
			want: []string{"Use SELECT with WHERE."},
		},
		{
			name: "unterminated bold is literal",
			in:   "2 ** 3",
			want: []string{"2 ** 3"},
		},
		{
			name: "fenced code is indented",
			in:   "Example:\n```sql\nSELECT 1;\n```\nDone.",
			want: []string{"Example:\n", "    SELECT 1;\n", "Done."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Theory(tt.in)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "```")
		})
	}
}

func TestResult_Batch(t *testing.T) {
	rowCount := 1
	out := Result(models.BatchResult{
		MultiStatement:     true,
		TotalStatements:    3,
		ExecutedStatements: 2,
		Stopped:            true,
		Results: []models.StatementResult{
			{
				StatementNumber: 1,
				Statement:       "SELECT name, type FROM pokemon",
				Success:         true,
				Columns:         []string{"name", "type"},
				Data:            []models.Row{{"name": "Pikachu", "type": "Electric"}},
				RowCount:        &rowCount,
			},
			{
				StatementNumber: 2,
				Statement:       "SELECT * FROM nope",
				Success:         false,
				Error:           "no such table: nope",
			},
		},
	})

	assert.Contains(t, out, "Executed 2 of 3 statement(s)")
	assert.Contains(t, out, "Execution stopped due to error")
	assert.Contains(t, out, "Statement 1")
	assert.Contains(t, out, "✓ Success")
	assert.Contains(t, out, "1 row(s) returned")
	assert.Contains(t, out, "Pikachu")
	assert.Contains(t, out, "Electric")
	assert.Contains(t, out, "✗ Error")
	assert.Contains(t, out, "no such table: nope")
	assert.Less(t, strings.Index(out, "Statement 1"), strings.Index(out, "Statement 2"))
}

func TestResult_BatchMessages(t *testing.T) {
	out := Result(models.BatchResult{
		TotalStatements:    2,
		ExecutedStatements: 2,
		Results: []models.StatementResult{
			{StatementNumber: 1, Statement: "UPDATE pokemon SET level = 1", Success: true, Message: "Success"},
			{StatementNumber: 2, Statement: "SELECT * FROM pokemon WHERE 0", Success: true, Columns: []string{"id"}, Data: []models.Row{}},
		},
	})

	assert.NotContains(t, out, "Executed")
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Query executed successfully. No rows returned.")
}

func TestResult_Legacy(t *testing.T) {
	tests := []struct {
		name   string
		result models.LegacyResult
		want   string
	}{
		{
			name:   "message",
			result: models.LegacyResult{Message: "Table created"},
			want:   "✓ Table created",
		},
		{
			name:   "no rows",
			result: models.LegacyResult{Columns: []string{"id"}, Data: []models.Row{}},
			want:   "No rows returned.",
		},
		{
			name:   "rows",
			result: models.LegacyResult{Columns: []string{"id"}, Data: []models.Row{{"id": json.Number("7")}}},
			want:   "1 row(s) returned.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Result(tt.result), tt.want)
		})
	}
}

func TestResult_Failure(t *testing.T) {
	out := Result(models.FailureResult{Status: 400, Message: "No query provided"})
	assert.Contains(t, out, "⚠️ No query provided")
}

func TestTable(t *testing.T) {
	out := Table(
		[]string{"name", "sprite_url", "trainer_id"},
		[]models.Row{
			{"name": "Pikachu", "sprite_url": "https://img.example/25.png", "trainer_id": nil},
			{"name": "Eevee"},
		},
	)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], "name")
	assert.Contains(t, lines[1], "sprite_url")
	assert.Contains(t, out, "https://img.example/25.png")
	assert.Equal(t, 3, strings.Count(out, "NULL"))
	assert.Less(t, strings.Index(out, "Pikachu"), strings.Index(out, "Eevee"))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "NULL", Cell("type", nil))
	assert.Equal(t, "true", Cell("legendary", true))
	assert.Equal(t, "12.5", Cell("weight", 12.5))
	assert.Contains(t, Cell("type", "Fire"), "Fire")
	assert.Equal(t, "", Cell("type", ""))
}
