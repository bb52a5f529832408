package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/database-playground/sqlquest/internal/tui"
)

// RunTUI starts the interactive playground and blocks until it exits.
func (c *Context) RunTUI(ctx context.Context) error {
	program := tea.NewProgram(tui.New(ctx, c.api), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}
