package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/database-playground/sqlquest/internal/markup"
	"github.com/database-playground/sqlquest/models"
	"github.com/samber/lo"
)

// LessonView is a lesson ready to be placed into the page.
//
// Badge, Title and Description are plain text; the templates escape them.
type LessonView struct {
	ID          int
	Badge       string
	Title       string
	Description string
	Theory      template.HTML
	Examples    template.HTML
}

// Lesson renders the header, theory and example cards of a lesson.
func Lesson(lesson models.Lesson) LessonView {
	return LessonView{
		ID:          lesson.ID,
		Badge:       lesson.Category,
		Title:       lesson.Title,
		Description: lesson.Content.Description,
		Theory:      template.HTML("<h3>What You'll Learn</h3>") + markup.FormatTheory(lesson.Content.Theory),
		Examples:    exampleCards(lesson),
	}
}

// ExamplePath is the action that loads an example into the editor.
func ExamplePath(lessonID, index int) string {
	return fmt.Sprintf("/lessons/%d/examples/%d", lessonID, index)
}

// LessonPath is the navigation target of a lesson.
func LessonPath(lessonID int) string {
	return fmt.Sprintf("/lessons/%d", lessonID)
}

func exampleCards(lesson models.Lesson) template.HTML {
	if len(lesson.Content.Examples) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<h3 class="examples-heading">Interactive Examples</h3>`)

	for index, example := range lesson.Content.Examples {
		path := ExamplePath(lesson.ID, index)

		sb.WriteString(`<div class="example-card" data-example-index="` + fmt.Sprint(index) + `">`)
		sb.WriteString(`<div class="example-header">`)
		sb.WriteString(`<div class="example-title">` + markup.Escape(example.Title) + `</div>`)
		sb.WriteString(`<a class="try-button" href="` + path + `" hx-get="` + path + `" hx-target="#editorPanel" hx-swap="outerHTML">Try It</a>`)
		sb.WriteString("</div>")
		sb.WriteString(`<p class="example-description">` + markup.Escape(example.Description) + `</p>`)
		sb.WriteString(`<div class="example-query">` + markup.Escape(example.Query) + `</div>`)
		sb.WriteString(`<p class="example-explanation">💡 ` + markup.Escape(example.Explanation) + `</p>`)
		sb.WriteString("</div>")
	}

	return template.HTML(sb.String())
}

// Navigation renders the lesson list grouped by category. Categories
// appear in the order they are first seen; the lesson with activeID is
// highlighted.
func Navigation(lessons []models.LessonSummary, activeID int) template.HTML {
	categories := lo.Uniq(lo.Map(lessons, func(lesson models.LessonSummary, _ int) string {
		return lesson.Category
	}))
	byCategory := lo.GroupBy(lessons, func(lesson models.LessonSummary) string {
		return lesson.Category
	})

	var sb strings.Builder
	for _, category := range categories {
		sb.WriteString(`<div class="lesson-category">`)
		sb.WriteString(`<div class="category-title">` + markup.Escape(category) + `</div>`)

		for _, lesson := range byCategory[category] {
			class := "lesson-item"
			if lesson.ID == activeID {
				class += " active"
			}

			path := LessonPath(lesson.ID)
			sb.WriteString(fmt.Sprintf(
				`<a class="%s" data-lesson-id="%d" href="%s" hx-get="%s" hx-target="#lessonMain" hx-push-url="true">`,
				class, lesson.ID, path, path,
			))
			sb.WriteString(fmt.Sprintf(`<div class="lesson-icon">%d</div>`, lesson.ID))
			sb.WriteString("<span>" + markup.Escape(lesson.Title) + "</span>")
			sb.WriteString("</a>")
		}

		sb.WriteString("</div>")
	}

	return template.HTML(sb.String())
}
