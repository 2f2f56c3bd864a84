package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"project-timer/internal/api"
	"project-timer/internal/domain"
	"project-timer/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
	api api.API
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, api: app.api}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	statuses := c.api.List(ctx)
	if len(statuses) == 0 {
		c.app.printf("No projects yet. Add one with: pt add \"name\"\n")
		return nil
	}
	c.app.printf("%s", c.app.renderStatuses(statuses, c.api.Now()))
	return nil
}

// renderStatuses formats one block per project with its state, live total,
// budget and the age of its last ledger entry
func (a *App) renderStatuses(statuses []services.ProjectStatus, now time.Time) string {
	nameWidth := 0
	for _, s := range statuses {
		if w := len([]rune(s.Project.Name)); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	for _, s := range statuses {
		marker, state := "○", mutedStyle.Render("idle")
		if s.Project.IsRunning {
			marker, state = runningStyle.Render("●"), runningStyle.Render(a.config.Display.RunningStatus)
		}
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			marker,
			padRight(nameStyle.Render(s.Project.Name), nameWidth),
			state,
			mutedStyle.Render(s.Project.ID))

		fmt.Fprintf(&b, "    total %s", domain.FormatTime(s.Total))
		if s.Budget != nil {
			fmt.Fprintf(&b, "  %s", progressBar(*s.Budget, a.config.Display.BarWidth))
			if s.Budget.Exceeded {
				fmt.Fprintf(&b, "  %s", errorStyle.Render("over budget"))
			} else {
				fmt.Fprintf(&b, "  %.1fh left", s.Budget.RemainingHours)
			}
		}
		b.WriteString("\n")

		if s.LastEntry != nil {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render("last entry "+humanize.RelTime(*s.LastEntry, now, "ago", "from now")))
		}
	}
	return b.String()
}
