package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
)

// PauseCommand handles the pause command. Pausing always records the
// interval, even an empty one.
type PauseCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

// Execute runs the pause command
func (c *PauseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "pause", "usage: pt pause <project>")
	}

	p, err := c.app.resolve(ctx, joinArgs(args))
	if err != nil {
		return c.errorHandler.Handle("pause project", err)
	}
	if p == nil {
		return nil
	}
	if !p.IsRunning {
		c.app.printf("%s is not running\n", nameStyle.Render(p.Name))
		return nil
	}

	paused, err := c.api.Pause(ctx, p.ID)
	if err != nil {
		return c.errorHandler.Handle("pause project", err)
	}
	last, _ := paused.TimeEntries.Last()
	c.app.printf("Paused %s at %s (logged %s)\n",
		nameStyle.Render(paused.Name), domain.FormatTime(paused.Time), domain.FormatTime(last.Duration))
	return nil
}
