package cli

import (
	"context"
	"sort"
	"strings"

	"project-timer/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("add", NewAddCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("start", NewStartCommand(app))
	registry.Register("pause", NewPauseCommand(app))
	registry.Register("stop", NewStopCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("set-time", NewSetTimeCommand(app))
	registry.Register("limit", NewLimitCommand(app))
	registry.Register("report", NewReportCommand(app))
	registry.Register("watch", NewWatchCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Execute runs a command by name
func (r *CommandRegistry) Execute(ctx context.Context, name string, args []string) error {
	cmd, ok := r.commands[name]
	if !ok {
		return errors.NewInvalidInputError("command", name, "unknown command\n"+r.GetUsage())
	}
	return cmd.Execute(ctx, args)
}

// GetUsage returns the usage listing of registered commands
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "usage: pt <command> [arguments]\ncommands: " + strings.Join(names, ", ")
}
