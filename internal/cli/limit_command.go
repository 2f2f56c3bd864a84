package cli

import (
	"context"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
)

// LimitCommand handles the limit set and limit adjust commands
type LimitCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler
}

// NewLimitCommand creates a new limit command handler
func NewLimitCommand(app *App) *LimitCommand {
	return &LimitCommand{app: app, api: app.api, errorHandler: NewErrorHandler()}
}

const limitUsage = "usage: pt limit set <project> <minutes> | pt limit adjust <project> <hours>"

// Execute runs the limit command
func (c *LimitCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.NewInvalidInputError("command", "limit", limitUsage)
	}
	n := len(args)
	ref, value := joinArgs(args[1:n-1]), args[n-1]

	switch args[0] {
	case "set":
		return c.set(ctx, ref, value)
	case "adjust":
		return c.adjust(ctx, ref, value)
	default:
		return errors.NewInvalidInputError("command", "limit "+args[0], limitUsage)
	}
}

func (c *LimitCommand) set(ctx context.Context, ref, value string) error {
	minutes, err := c.app.parseMinutes(value)
	if err != nil {
		return c.errorHandler.Handle("set limit", err)
	}
	p, err := c.app.resolve(ctx, ref)
	if err != nil {
		return c.errorHandler.Handle("set limit", err)
	}
	if p == nil {
		return nil
	}

	if err := c.api.SetLimit(ctx, p.ID, minutes); err != nil {
		return c.errorHandler.Handle("set limit", err)
	}
	return c.report(ctx, p)
}

func (c *LimitCommand) adjust(ctx context.Context, ref, value string) error {
	hours, err := c.app.parseDeltaHours(value)
	if err != nil {
		return c.errorHandler.Handle("adjust limit", err)
	}
	p, err := c.app.resolve(ctx, ref)
	if err != nil {
		return c.errorHandler.Handle("adjust limit", err)
	}
	if p == nil {
		return nil
	}

	if _, err := c.api.AdjustLimit(ctx, p.ID, hours); err != nil {
		return c.errorHandler.Handle("adjust limit", err)
	}
	return c.report(ctx, p)
}

// report prints the project's budget after a change
func (c *LimitCommand) report(ctx context.Context, p *domain.Project) error {
	budget, err := c.api.Progress(ctx, p.ID)
	if err != nil {
		return c.errorHandler.Handle("read limit", err)
	}
	if budget == nil {
		c.app.printf("Cleared limit for %s\n", nameStyle.Render(p.Name))
		return nil
	}
	c.app.printf("Limit for %s: %s  %s\n",
		nameStyle.Render(p.Name),
		domain.FormatTime(budget.LimitSeconds),
		progressBar(*budget, c.app.config.Display.BarWidth))
	return nil
}
