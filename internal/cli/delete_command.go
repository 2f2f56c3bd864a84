package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the delete command. The project's ledger and budget go with it.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: pt delete <project>")
	}

	p, err := c.app.resolve(ctx, joinArgs(args))
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	if p == nil {
		return nil
	}

	if err := c.api.Delete(ctx, p.ID); err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	c.app.printf("Deleted %s\n", nameStyle.Render(p.Name))
	return nil
}
