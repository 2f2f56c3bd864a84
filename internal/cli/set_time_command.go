package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
)

// SetTimeCommand handles the set-time command
type SetTimeCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewSetTimeCommand creates a new set-time command handler
func NewSetTimeCommand(app *App) *SetTimeCommand {
	return &SetTimeCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the set-time command: the last two arguments are hours and
// minutes, everything before them names the project
func (c *SetTimeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.NewInvalidInputError("command", "set-time", "usage: pt set-time <project> <hours> <minutes>")
	}
	n := len(args)

	hours, err := c.app.parseCount("hours", args[n-2])
	if err != nil {
		return c.errorHandler.Handle("set time", err)
	}
	minutes, err := c.app.parseCount("minutes", args[n-1])
	if err != nil {
		return c.errorHandler.Handle("set time", err)
	}

	p, err := c.app.resolve(ctx, joinArgs(args[:n-2]))
	if err != nil {
		return c.errorHandler.Handle("set time", err)
	}
	if p == nil {
		return nil
	}

	updated, err := c.api.SetInitialTime(ctx, p.ID, hours, minutes)
	if err != nil {
		return c.errorHandler.Handle("set time", err)
	}
	c.app.printf("Set %s to %s\n", nameStyle.Render(updated.Name), domain.FormatTime(updated.Time))
	return nil
}
