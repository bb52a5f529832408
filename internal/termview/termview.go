// Package termview renders lessons and execution results for a terminal.
//
// The column rules follow the HTML renderer: type values become colored
// badges, sprite URLs are printed as text, and null cells read NULL.
package termview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/database-playground/sqlquest/internal/render"
	"github.com/database-playground/sqlquest/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	boldStyle     = lipgloss.NewStyle().Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nullStyle   = cellStyle.Foreground(lipgloss.Color("244")).Italic(true)
)

// typeColors maps type badge tokens to their colors. Unknown tokens are
// rendered without a background.
var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#A8A878"),
	"fire":     lipgloss.Color("#F08030"),
	"water":    lipgloss.Color("#6890F0"),
	"electric": lipgloss.Color("#F8D030"),
	"grass":    lipgloss.Color("#78C850"),
	"ice":      lipgloss.Color("#98D8D8"),
	"fighting": lipgloss.Color("#C03028"),
	"poison":   lipgloss.Color("#A040A0"),
	"ground":   lipgloss.Color("#E0C068"),
	"flying":   lipgloss.Color("#A890F0"),
	"psychic":  lipgloss.Color("#F85888"),
	"bug":      lipgloss.Color("#A8B820"),
	"rock":     lipgloss.Color("#B8A038"),
	"ghost":    lipgloss.Color("#705898"),
	"dragon":   lipgloss.Color("#7038F8"),
	"dark":     lipgloss.Color("#705848"),
	"steel":    lipgloss.Color("#B8B8D0"),
	"fairy":    lipgloss.Color("#EE99AC"),
}

// LessonList renders the lesson list grouped by category, in the order
// the categories first appear.
func LessonList(lessons []models.LessonSummary) string {
	if len(lessons) == 0 {
		return mutedStyle.Render("No lessons available.") + "\n"
	}

	var sb strings.Builder
	category := ""
	for i, lesson := range lessons {
		if i == 0 || lesson.Category != category {
			if i > 0 {
				sb.WriteString("\n")
			}
			category = lesson.Category
			sb.WriteString(categoryStyle.Render(category) + "\n")
		}

		sb.WriteString("  " + mutedStyle.Render(strconv.Itoa(lesson.ID)+".") + " " + lesson.Title + "\n")
	}

	return sb.String()
}

// Lesson renders a lesson with its theory text and examples.
func Lesson(lesson models.Lesson) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(lesson.Title) + "\n")
	sb.WriteString(mutedStyle.Render(lesson.Category) + "\n\n")

	if lesson.Content.Description != "" {
		sb.WriteString(lesson.Content.Description + "\n\n")
	}

	if lesson.Content.Theory != "" {
		sb.WriteString(Theory(lesson.Content.Theory) + "\n")
	}

	for i, example := range lesson.Content.Examples {
		sb.WriteString(boldStyle.Render("Example "+strconv.Itoa(i+1)+": "+example.Title) + "\n")
		if example.Description != "" {
			sb.WriteString(example.Description + "\n")
		}
		sb.WriteString(indent(codeStyle.Render(example.Query)) + "\n")
		if example.Explanation != "" {
			sb.WriteString(mutedStyle.Render(example.Explanation) + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Theory renders the markdown subset of theory text: fenced code blocks
// are indented and highlighted, bold spans are bold, and inline code is
// highlighted.
func Theory(text string) string {
	var sb strings.Builder

	inCode := false
	for line := range strings.SplitSeq(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			continue
		}

		if inCode {
			sb.WriteString(indent(codeStyle.Render(line)) + "\n")
			continue
		}

		sb.WriteString(inline(line) + "\n")
	}

	return sb.String()
}

// inline styles **bold** and `code` spans. An unterminated marker is
// kept as literal text.
func inline(line string) string {
	var sb strings.Builder

	for line != "" {
		bold := strings.Index(line, "**")
		code := strings.IndexByte(line, '`')

		switch {
		case bold >= 0 && (code < 0 || bold < code):
			end := strings.Index(line[bold+2:], "**")
			if end <= 0 {
				sb.WriteString(line)
				return sb.String()
			}
			sb.WriteString(line[:bold])
			sb.WriteString(boldStyle.Render(line[bold+2 : bold+2+end]))
			line = line[bold+2+end+2:]
		case code >= 0:
			end := strings.IndexByte(line[code+1:], '`')
			if end <= 0 {
				sb.WriteString(line)
				return sb.String()
			}
			sb.WriteString(line[:code])
			sb.WriteString(codeStyle.Render(line[code+1 : code+1+end]))
			line = line[code+1+end+1:]
		default:
			sb.WriteString(line)
			return sb.String()
		}
	}

	return sb.String()
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}

	return strings.Join(lines, "\n")
}

// Result renders a classified execution response.
func Result(result models.ExecutionResult) string {
	var sb strings.Builder

	switch r := result.(type) {
	case models.BatchResult:
		writeBatch(&sb, r)
	case models.LegacyResult:
		writeLegacy(&sb, r)
	case models.FailureResult:
		sb.WriteString(errorStyle.Render("⚠️ "+r.Message) + "\n")
	}

	return sb.String()
}

func writeBatch(sb *strings.Builder, batch models.BatchResult) {
	if batch.MultiStatement {
		summary := "Executed " + strconv.Itoa(batch.ExecutedStatements) +
			" of " + strconv.Itoa(batch.TotalStatements) + " statement(s)"
		if batch.Stopped {
			sb.WriteString(warningStyle.Bold(true).Render(summary) + "\n")
			sb.WriteString(warningStyle.Render("⚠️ Execution stopped due to error") + "\n")
		} else {
			sb.WriteString(successStyle.Bold(true).Render(summary) + "\n")
		}
		sb.WriteString("\n")
	}

	for _, result := range batch.Results {
		writeStatement(sb, result)
	}
}

func writeStatement(sb *strings.Builder, result models.StatementResult) {
	header := "Statement " + strconv.Itoa(result.StatementNumber)
	if result.Success {
		sb.WriteString(boldStyle.Render(header) + " " + successStyle.Render("✓ Success") + "\n")
	} else {
		sb.WriteString(boldStyle.Render(header) + " " + errorStyle.Render("✗ Error") + "\n")
	}
	sb.WriteString(indent(codeStyle.Render(result.Statement)) + "\n")

	switch {
	case !result.Success:
		sb.WriteString(errorStyle.Render(result.Error) + "\n")
	case result.Data == nil:
		sb.WriteString(successStyle.Render(result.Message) + "\n")
	case len(result.Data) == 0:
		sb.WriteString(successStyle.Render("Query executed successfully. No rows returned.") + "\n")
	default:
		sb.WriteString(successStyle.Render(strconv.Itoa(models.RowCountOf(result.RowCount, result.Data))+" row(s) returned") + "\n")
		sb.WriteString(Table(result.Columns, result.Data) + "\n")
	}

	sb.WriteString("\n")
}

func writeLegacy(sb *strings.Builder, legacy models.LegacyResult) {
	switch {
	case legacy.Data == nil:
		sb.WriteString(successStyle.Render("✓ "+legacy.Message) + "\n")
	case len(legacy.Data) == 0:
		sb.WriteString(successStyle.Render("✓ Query executed successfully. No rows returned.") + "\n")
	default:
		sb.WriteString(successStyle.Render("✓ Query executed successfully. "+
			strconv.Itoa(models.RowCountOf(legacy.RowCount, legacy.Data))+" row(s) returned.") + "\n")
		sb.WriteString(Table(legacy.Columns, legacy.Data) + "\n")
	}
}

// Table renders rows as a bordered table with one column per name in
// columns, in that order.
func Table(columns []string, data []models.Row) string {
	rows := make([][]string, len(data))
	for i, row := range data {
		cells := make([]string, len(columns))
		for j, column := range columns {
			cells[j] = Cell(column, row[column])
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(data) && col < len(columns) && data[row][columns[col]] == nil {
				return nullStyle
			}

			return cellStyle
		})

	return t.String()
}

// Cell returns the display text of a cell value in column.
func Cell(column string, value any) string {
	if column == render.ColumnType && render.Truthy(value) {
		text := render.CellText(value)
		style := lipgloss.NewStyle().Bold(true)
		if color, ok := typeColors[render.TypeToken(text)]; ok {
			style = style.Foreground(lipgloss.Color("#FFFFFF")).Background(color)
		}

		return style.Render(text)
	}

	return render.CellText(value)
}
