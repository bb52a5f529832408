// Package tui is the terminal playground: a lesson pane, a query editor
// and a results pane driven by bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/database-playground/sqlquest/internal/termview"
	"github.com/database-playground/sqlquest/models"
)

const (
	MessageLessonsFailed = "Failed to load lessons."
	MessageLessonFailed  = "Failed to load lesson content."
	MessageEmptyQuery    = "Please enter a SQL query."
	MessageRunFailed     = "Failed to execute query. Please try again."
	MessageNoExamples    = "This lesson has no examples."
)

const (
	editorHeight = 8
	// chromeHeight is the number of lines taken by the title, status
	// and help lines plus the editor border.
	chromeHeight = 6
)

// API is the part of the API client the playground uses.
type API interface {
	ListLessons(ctx context.Context) ([]models.LessonSummary, error)
	GetLesson(ctx context.Context, id int) (models.Lesson, error)
	Execute(ctx context.Context, query string) (models.ExecutionResult, error)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is the bubbletea model of the playground.
type Model struct {
	ctx context.Context
	api API

	lessons []models.LessonSummary
	index   int
	lesson  *models.Lesson
	// nextExample is the index of the example ctrl+e loads next.
	nextExample int

	lessonView string
	resultView string

	editor  textarea.Model
	output  viewport.Model
	spinner spinner.Model

	running bool
	status  string
}

// New creates the playground model. ctx bounds every API call.
func New(ctx context.Context, api API) *Model {
	editor := textarea.New()
	editor.Placeholder = "SELECT * FROM pokemon;"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.SetHeight(editorHeight)
	editor.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		ctx:     ctx,
		api:     api,
		editor:  editor,
		output:  viewport.New(80, 16),
		spinner: s,
		status:  "Loading lessons...",
	}
}

// Messages
type lessonsMsg struct {
	lessons []models.LessonSummary
	err     error
}

type lessonMsg struct {
	lesson models.Lesson
	err    error
}

type resultMsg struct {
	result models.ExecutionResult
	err    error
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.listLessons)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetWidth(msg.Width)
		m.output.Width = msg.Width
		m.output.Height = max(msg.Height-editorHeight-chromeHeight, 3)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lessonsMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(MessageLessonsFailed)
			return m, nil
		}
		m.lessons = msg.lessons
		if len(m.lessons) == 0 {
			m.status = "No lessons available."
			return m, nil
		}
		m.index = 0
		return m, m.loadLesson(m.lessons[0].ID)

	case lessonMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(MessageLessonFailed)
			return m, nil
		}
		lesson := msg.lesson
		if len(m.lessons) > 0 && lesson.ID != m.lessons[m.index].ID {
			// superseded by a later navigation
			return m, nil
		}
		m.lesson = &lesson
		m.nextExample = 0
		m.lessonView = termview.Lesson(lesson)
		m.resultView = ""
		m.status = fmt.Sprintf("Lesson %d of %d", m.index+1, len(m.lessons))
		m.refreshOutput()
		return m, nil

	case resultMsg:
		m.running = false
		if msg.err != nil {
			m.status = errorStyle.Render(MessageRunFailed)
			m.resultView = termview.Result(models.FailureResult{Message: MessageRunFailed})
		} else {
			m.status = "Query finished."
			m.resultView = termview.Result(msg.result)
		}
		m.refreshOutput()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m, tea.Quit

	case "tab":
		return m, m.stepLesson(1)

	case "shift+tab":
		return m, m.stepLesson(-1)

	case "ctrl+e":
		m.loadNextExample()
		return m, nil

	case "ctrl+r":
		return m, m.run()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// stepLesson moves through the lesson list by delta, wrapping around.
func (m *Model) stepLesson(delta int) tea.Cmd {
	if len(m.lessons) == 0 {
		return nil
	}

	m.index = (m.index + delta + len(m.lessons)) % len(m.lessons)
	m.status = "Loading lesson..."

	return m.loadLesson(m.lessons[m.index].ID)
}

// loadNextExample copies the next example of the current lesson into the
// editor, cycling through the examples.
func (m *Model) loadNextExample() {
	if m.lesson == nil {
		return
	}

	example, ok := m.lesson.Example(m.nextExample)
	if !ok {
		m.status = MessageNoExamples
		return
	}

	m.editor.SetValue(example.Query)
	m.status = fmt.Sprintf("Loaded example %d: %s", m.nextExample+1, example.Title)
	m.nextExample = (m.nextExample + 1) % len(m.lesson.Content.Examples)
}

// run starts executing the editor content. It does nothing while a
// query is in flight.
func (m *Model) run() tea.Cmd {
	if m.running {
		return nil
	}

	query := strings.TrimSpace(m.editor.Value())
	if query == "" {
		m.status = errorStyle.Render(MessageEmptyQuery)
		return nil
	}

	m.running = true
	m.status = "Running query..."

	return tea.Batch(m.spinner.Tick, m.execute(query))
}

// Commands
func (m *Model) listLessons() tea.Msg {
	lessons, err := m.api.ListLessons(m.ctx)
	return lessonsMsg{lessons: lessons, err: err}
}

func (m *Model) loadLesson(id int) tea.Cmd {
	return func() tea.Msg {
		lesson, err := m.api.GetLesson(m.ctx, id)
		return lessonMsg{lesson: lesson, err: err}
	}
}

func (m *Model) execute(query string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.api.Execute(m.ctx, query)
		return resultMsg{result: result, err: err}
	}
}

func (m *Model) refreshOutput() {
	content := m.lessonView
	if m.resultView != "" {
		content = m.resultView + "\n" + content
	}

	m.output.SetContent(content)
	m.output.GotoTop()
}

func (m *Model) View() string {
	var s strings.Builder

	title := "SQL Quest"
	if m.lesson != nil {
		title += " · " + m.lesson.Category
	}
	s.WriteString(titleStyle.Render(title) + "\n")
	s.WriteString(m.output.View() + "\n")
	s.WriteString(m.editor.View() + "\n")

	if m.running {
		s.WriteString(m.spinner.View() + " ")
	}
	s.WriteString(statusStyle.Render(m.status) + "\n")
	s.WriteString(helpStyle.Render("tab/shift+tab lessons • ctrl+e example • ctrl+r run • pgup/pgdown scroll • esc quit"))

	return s.String()
}

