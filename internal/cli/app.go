package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"project-timer/internal/api"
	"project-timer/internal/config"
	"project-timer/internal/domain"
	"project-timer/internal/errors"
	"project-timer/internal/validation"
)

// App represents the main CLI application
type App struct {
	api      api.API
	config   *config.Config
	out      io.Writer
	registry *CommandRegistry
}

// NewAppWithOutput creates a new CLI application writing to out, or stdout
// when out is nil
func NewAppWithOutput(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	app := &App{
		api:    apiInstance,
		config: cfg,
		out:    out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the named command with the remaining arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) strict() bool {
	return a.config.Behavior.Strict
}

// resolve looks up a project by id or name. In permissive mode an unknown
// reference prints a notice and returns nil without an error.
func (a *App) resolve(ctx context.Context, ref string) (*domain.Project, error) {
	p, err := a.api.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		a.printf("No project matches %q\n", ref)
	}
	return p, nil
}

// parseCount parses an hours or minutes field, coercing bad input to 0
// unless strict mode is on
func (a *App) parseCount(field, s string) (int64, error) {
	n, ok := validation.ParseNonNegativeInt(s)
	if !ok && a.strict() {
		return 0, errors.NewInvalidInputError(field, s, "must be a non-negative number")
	}
	return n, nil
}

func (a *App) parseMinutes(s string) (float64, error) {
	m, ok := validation.ParseMinutes(s)
	if !ok && a.strict() {
		return 0, errors.NewInvalidInputError("minutes", s, "must be a non-negative number")
	}
	return m, nil
}

func (a *App) parseDeltaHours(s string) (int64, error) {
	h, ok := validation.ParseDeltaHours(s)
	if !ok && a.strict() {
		return 0, errors.NewInvalidInputError("hours", s, "must be a whole number")
	}
	return h, nil
}

// joinArgs rebuilds a project name or reference split by the shell
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
