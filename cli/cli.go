// Package cli provides the commands of the terminal client.
package cli

import (
	"github.com/database-playground/sqlquest/internal/tui"
)

// Context is the context for the CLI.
type Context struct {
	api tui.API
}

// NewContext creates a new Context.
func NewContext(api tui.API) *Context {
	return &Context{
		api: api,
	}
}
