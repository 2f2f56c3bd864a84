package cli

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/logging"
)

// Notifier shows a desktop notification
type Notifier func(title, message string) error

// DesktopNotifier sends notifications through the OS notification service
func DesktopNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}

const clearScreen = "\033[H\033[2J"

// WatchCommand keeps the timers ticking in the foreground, redrawing the
// project list on every tick until the context ends
type WatchCommand struct {
	app          *App
	api          api.API
	errorHandler *ErrorHandler

	// Notify is called once per project when its budget is reached. Nil
	// disables notifications.
	Notify Notifier
	// Clear redraws in place instead of appending.
	Clear bool

	notified map[string]bool
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	cmd := &WatchCommand{
		app:          app,
		api:          app.api,
		errorHandler: NewErrorHandler(),
		notified:     make(map[string]bool),
	}
	if app.config.Application.Notify {
		cmd.Notify = DesktopNotifier
	}
	return cmd
}

// Execute runs until ctx is cancelled
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	c.render(ctx)
	logging.Infof("watching projects, ticking every %s", c.app.config.Timer.TickInterval)

	handle := c.api.StartTicking(ctx, c.app.config.Timer.TickInterval, func() {
		c.render(ctx)
	})
	defer handle.Stop()

	<-ctx.Done()
	return nil
}

// render draws the project list and raises budget notifications
func (c *WatchCommand) render(ctx context.Context) {
	statuses := c.api.List(ctx)

	if c.Clear {
		c.app.printf("%s", clearScreen)
	}
	c.app.printf("%s %s\n", titleStyle.Render("pt watch"), mutedStyle.Render(c.api.Now().Format(c.app.config.Display.TimeFormat)+" · Ctrl-C to quit"))
	if len(statuses) == 0 {
		c.app.printf("No projects yet\n")
		return
	}
	c.app.printf("%s", c.app.renderStatuses(statuses, c.api.Now()))

	for _, s := range statuses {
		if s.Budget == nil || !s.Budget.Exceeded {
			delete(c.notified, s.Project.ID)
			continue
		}
		if c.notified[s.Project.ID] || c.Notify == nil {
			continue
		}
		c.notified[s.Project.ID] = true
		msg := fmt.Sprintf("%s reached its budget of %s", s.Project.Name, domain.FormatTime(s.Budget.LimitSeconds))
		if err := c.Notify("Project timer", msg); err != nil {
			logging.Warnf("notification failed: %v", err)
		}
	}
}
