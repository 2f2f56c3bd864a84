package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: pt add \"project name\"")
	}

	p, err := c.api.Add(ctx, joinArgs(args))
	if err != nil {
		return c.errorHandler.Handle("add project", err)
	}
	if p == nil {
		c.app.printf("Nothing added: project name is blank\n")
		return nil
	}
	c.app.printf("Added project %s %s\n", nameStyle.Render(p.Name), mutedStyle.Render("("+p.ID+")"))
	return nil
}
