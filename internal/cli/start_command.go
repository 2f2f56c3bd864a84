package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/errors"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "start", "usage: pt start <project>")
	}

	p, err := c.app.resolve(ctx, joinArgs(args))
	if err != nil {
		return c.errorHandler.Handle("start project", err)
	}
	if p == nil {
		return nil
	}
	if p.IsRunning {
		c.app.printf("%s is already %s\n", nameStyle.Render(p.Name), c.app.config.Display.RunningStatus)
		return nil
	}

	if _, err := c.api.Start(ctx, p.ID); err != nil {
		return c.errorHandler.Handle("start project", err)
	}
	c.app.printf("Started %s\n", nameStyle.Render(p.Name))
	return nil
}
