package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
)

// StopCommand handles the stop command. Stopping records the interval only
// when it lasted at least a second.
type StopCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "stop", "usage: pt stop <project>")
	}

	p, err := c.app.resolve(ctx, joinArgs(args))
	if err != nil {
		return c.errorHandler.Handle("stop project", err)
	}
	if p == nil {
		return nil
	}
	if !p.IsRunning {
		c.app.printf("%s is not running\n", nameStyle.Render(p.Name))
		return nil
	}

	stopped, err := c.api.Stop(ctx, p.ID)
	if err != nil {
		return c.errorHandler.Handle("stop project", err)
	}
	c.app.printf("Stopped %s at %s\n", nameStyle.Render(stopped.Name), domain.FormatTime(stopped.Time))
	return nil
}
