// Package render turns lessons and execution results into HTML.
//
// Every externally-sourced string goes through markup.Escape before it
// is written; the fragments are returned as template.HTML so the page
// templates embed them as is.
package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/database-playground/sqlquest/internal/markup"
	"github.com/database-playground/sqlquest/models"
)

// ExecutionResult renders a classified execution response.
//
// Statements and rows are written in the order the execution service
// returned them.
func ExecutionResult(result models.ExecutionResult) template.HTML {
	var sb strings.Builder

	switch r := result.(type) {
	case models.BatchResult:
		writeBatch(&sb, r)
	case models.LegacyResult:
		writeLegacy(&sb, r)
	case models.FailureResult:
		writeErrorMessage(&sb, r.Message)
	}

	return template.HTML(sb.String())
}

func writeBatch(sb *strings.Builder, batch models.BatchResult) {
	if batch.MultiStatement {
		summaryClass := "success"
		if batch.Stopped {
			summaryClass = "warning"
		}

		sb.WriteString(`<div class="results-summary ` + summaryClass + `">`)
		sb.WriteString("<strong>Executed " + strconv.Itoa(batch.ExecutedStatements) +
			" of " + strconv.Itoa(batch.TotalStatements) + " statement(s)</strong>")
		if batch.Stopped {
			sb.WriteString(`<br><span class="results-warning">⚠️ Execution stopped due to error</span>`)
		}
		sb.WriteString("</div>")
	}

	for _, result := range batch.Results {
		writeStatement(sb, result)
	}
}

func writeStatement(sb *strings.Builder, result models.StatementResult) {
	sb.WriteString(`<div class="statement-result" data-statement-number="` + strconv.Itoa(result.StatementNumber) + `">`)

	sb.WriteString(`<div class="statement-header">`)
	sb.WriteString(`<span class="statement-number">Statement ` + strconv.Itoa(result.StatementNumber) + `</span>`)
	if result.Success {
		sb.WriteString(`<span class="statement-status success">✓ Success</span>`)
	} else {
		sb.WriteString(`<span class="statement-status error">✗ Error</span>`)
	}
	sb.WriteString("</div>")

	sb.WriteString(`<div class="statement-code"><code>`)
	sb.WriteString(markup.Escape(result.Statement))
	sb.WriteString("</code></div>")

	switch {
	case !result.Success:
		writeStatementMessage(sb, "error", markup.Escape(result.Error))
	case result.Data == nil:
		writeStatementMessage(sb, "success", markup.Escape(result.Message))
	case len(result.Data) == 0:
		writeStatementMessage(sb, "success", "Query executed successfully. No rows returned.")
	default:
		writeStatementMessage(sb, "success", strconv.Itoa(models.RowCountOf(result.RowCount, result.Data))+" row(s) returned")
		writeTable(sb, result.Columns, result.Data)
	}

	sb.WriteString("</div>")
}

// writeStatementMessage writes an already escaped message.
func writeStatementMessage(sb *strings.Builder, class, message string) {
	sb.WriteString(`<div class="statement-message ` + class + `">`)
	sb.WriteString(message)
	sb.WriteString("</div>")
}

func writeLegacy(sb *strings.Builder, legacy models.LegacyResult) {
	switch {
	case legacy.Data == nil:
		writeSuccessMessage(sb, legacy.Message)
	case len(legacy.Data) == 0:
		sb.WriteString(`<div class="results-info success"><span>✓ Query executed successfully. No rows returned.</span></div>`)
	default:
		sb.WriteString(`<div class="results-info success"><span>✓ Query executed successfully. `)
		sb.WriteString(strconv.Itoa(models.RowCountOf(legacy.RowCount, legacy.Data)))
		sb.WriteString(" row(s) returned.</span></div>")
		writeTable(sb, legacy.Columns, legacy.Data)
	}
}

func writeTable(sb *strings.Builder, columns []string, data []models.Row) {
	sb.WriteString(`<table class="results-table"><thead><tr>`)
	for _, column := range columns {
		sb.WriteString("<th>" + markup.Escape(column) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")

	for _, row := range data {
		sb.WriteString("<tr>")
		for _, column := range columns {
			writeCell(sb, column, row[column])
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</tbody></table>")
}

func writeSuccessMessage(sb *strings.Builder, message string) {
	sb.WriteString(`<div class="results-info success"><span>✓ `)
	sb.WriteString(markup.Escape(message))
	sb.WriteString("</span></div>")
}

func writeErrorMessage(sb *strings.Builder, message string) {
	sb.WriteString(`<div class="error-message">⚠️ `)
	sb.WriteString(markup.Escape(message))
	sb.WriteString("</div>")
}

// SuccessMessage renders a standalone success panel.
func SuccessMessage(message string) template.HTML {
	var sb strings.Builder
	writeSuccessMessage(&sb, message)

	return template.HTML(sb.String())
}

// ErrorMessage renders a standalone error panel.
func ErrorMessage(message string) template.HTML {
	var sb strings.Builder
	writeErrorMessage(&sb, message)

	return template.HTML(sb.String())
}

// Placeholder renders the results panel shown before any query runs.
func Placeholder() template.HTML {
	return template.HTML(`<div class="results-placeholder">` +
		`<svg width="48" height="48" viewBox="0 0 48 48" fill="none" xmlns="http://www.w3.org/2000/svg">` +
		`<rect x="8" y="8" width="32" height="32" rx="2" stroke="currentColor" stroke-width="2" opacity="0.3"/>` +
		`<line x1="8" y1="16" x2="40" y2="16" stroke="currentColor" stroke-width="2" opacity="0.3"/>` +
		`<line x1="16" y1="16" x2="16" y2="40" stroke="currentColor" stroke-width="2" opacity="0.3"/>` +
		`</svg><p>Run a query to see results</p></div>`)
}
