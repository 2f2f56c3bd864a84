package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"project-timer/internal/api"
	"project-timer/internal/config"
	"project-timer/internal/logging"
	"project-timer/internal/services"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	api    api.API
	config *config.Config
	clock  services.Clock

	// ownsAPI is set when the API was opened from configuration and must be
	// closed after the command finishes.
	ownsAPI bool
}

// NewRootCommand creates the root command. Configuration is loaded through
// loader and the store is opened before the first subcommand runs.
func NewRootCommand(loader *config.Loader) *RootCommand {
	root := &RootCommand{loader: loader, clock: services.SystemClock{}}
	root.build()
	return root
}

// NewRootCommandWithAPI creates the root command over an already open API
func NewRootCommandWithAPI(apiInstance api.API, cfg *config.Config) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{api: apiInstance, config: cfg, clock: services.SystemClock{}}
	root.build()
	return root
}

func (r *RootCommand) build() {
	r.cmd = &cobra.Command{
		Use:   "pt",
		Short: "Per-project timers with budgets and reports",
		Long: `Project Timer (pt) keeps a stopwatch per project, records every
session in a ledger and reports time spent per day, week and month.

EXAMPLES:
  pt add "Client A"                        # Create a project
  pt start "Client A"                      # Start its timer
  pt pause "Client A"                      # Log the session
  pt stop "Client A"                       # Log the session unless it was under a second
  pt set-time "Client A" 2 30              # Set the total to 2h 30m
  pt limit set "Client A" 600              # Budget of 600 minutes
  pt limit adjust "Client A" -2            # Shrink the budget by 2 hours
  pt report week --format csv              # Weekly breakdown as CSV
  pt watch                                 # Keep timers ticking

CONFIGURATION:
  Priority: command-line flags > environment variables > config file > defaults
  Config file: ~/.pt/config.yaml (override with PT_CONFIG)

    PT_STORAGE                             Storage backend: sqlite or json (default: sqlite)
    PT_DATA_DIR                            Data directory (default: ~/.pt)
    PT_FILENAME                            Data file name (default: pt.db or projects.json)
    PT_TICK_INTERVAL                       Tick interval for watch (default: 1s)
    PT_WEEK_START                          First day of the week (default: sunday)
    PT_STRICT                              Report invalid input and unknown projects as errors
    PT_DEBUG                               Enable debug logging
    PT_LOG_FILE                            Write logs to a rotating file
    PT_APP_TIMEOUT                         Per-command timeout (default: 60s)
    PT_NOTIFY                              Desktop notification when a budget is reached`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup(cmd)
		},
	}

	r.addGlobalFlags()
	r.addSubcommands()
}

// SetOutput redirects command output and errors
func (r *RootCommand) SetOutput(w io.Writer) {
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// SetArgs sets the arguments parsed by Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, closing any store it opened
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.ownsAPI && r.api != nil {
		if closeErr := r.api.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.api, r.ownsAPI = nil, false
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("storage", "", "Storage backend: sqlite or json (overrides PT_STORAGE)")
	flags.String("data-dir", "", "Data directory (overrides PT_DATA_DIR)")
	flags.String("filename", "", "Data file name (overrides PT_FILENAME)")

	// Timer configuration
	flags.Duration("tick-interval", 0, "Tick interval for watch (overrides PT_TICK_INTERVAL)")
	flags.String("week-start", "", "First day of the week (overrides PT_WEEK_START)")

	// Behavior configuration
	flags.Bool("strict", false, "Report invalid input and unknown projects as errors (overrides PT_STRICT)")

	// Logging configuration
	flags.Bool("debug", false, "Enable debug logging (overrides PT_DEBUG)")
	flags.String("log-file", "", "Write logs to a rotating file (overrides PT_LOG_FILE)")

	// Application configuration
	flags.Duration("timeout", 0, "Per-command timeout (overrides PT_APP_TIMEOUT)")
	flags.Bool("notify", false, "Desktop notification when a budget is reached (overrides PT_NOTIFY)")
}

// overridesFromFlags collects the flags that were set on the command line
func overridesFromFlags(flags *pflag.FlagSet) (*config.ConfigOverrides, error) {
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string, dst **string) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	boolFlag := func(name string, dst **bool) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	durationFlag := func(name string, dst **time.Duration) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := flags.GetDuration(name)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}

	for _, set := range []func() error{
		func() error { return stringFlag("storage", &overrides.Backend) },
		func() error { return stringFlag("data-dir", &overrides.DataDir) },
		func() error { return stringFlag("filename", &overrides.Filename) },
		func() error { return durationFlag("tick-interval", &overrides.TickInterval) },
		func() error { return stringFlag("week-start", &overrides.WeekStart) },
		func() error { return boolFlag("strict", &overrides.Strict) },
		func() error { return boolFlag("debug", &overrides.Debug) },
		func() error { return stringFlag("log-file", &overrides.LogFile) },
		func() error { return durationFlag("timeout", &overrides.Timeout) },
		func() error { return boolFlag("notify", &overrides.Notify) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}
	return overrides, nil
}

// setup loads configuration, configures logging and opens the store
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.api != nil {
		return nil
	}
	if r.loader == nil {
		return fmt.Errorf("configuration not initialized")
	}

	overrides, err := overridesFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := r.loader.LoadWithOverrides(overrides)
	if err != nil {
		return err
	}
	logging.Configure(cfg.LoggingOptions())
	logging.Debugf("configuration file %s", r.loader.ConfigPath())
	logging.Debugf("using %s storage at %s", cfg.Storage.Backend, cfg.GetStoragePath())

	apiInstance, err := api.Open(cmd.Context(), cfg, r.clock)
	if err != nil {
		return err
	}
	r.config, r.api, r.ownsAPI = cfg, apiInstance, true
	return nil
}

// getAppTimeout returns the configured per-command timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// newApp builds the command layer writing to cmd's output
func (r *RootCommand) newApp(cmd *cobra.Command) *App {
	return NewAppWithOutput(r.api, r.config, cmd.OutOrStdout())
}

// handler builds a RunE that dispatches to the registered command name under
// the app timeout. prefix is prepended to the positional arguments.
func (r *RootCommand) handler(name string, prefix ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		argv := append([]string{name}, prefix...)
		return r.newApp(cmd).Run(ctx, append(argv, args...))
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [project name]",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.handler("add"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with totals and budgets",
		Args:  cobra.NoArgs,
		RunE:  r.handler("list"),
	}

	startCmd := &cobra.Command{
		Use:   "start [project]",
		Short: "Start a project's timer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.handler("start"),
	}

	pauseCmd := &cobra.Command{
		Use:   "pause [project]",
		Short: "Pause a timer and log the session",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.handler("pause"),
	}

	stopCmd := &cobra.Command{
		Use:   "stop [project]",
		Short: "Stop a timer and log the session",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.handler("stop"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [project]",
		Short: "Delete a project, its ledger and its budget",
		Long:  "Delete a project together with its time entries and budget. This cannot be undone.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.handler("delete"),
	}

	setTimeCmd := &cobra.Command{
		Use:   "set-time [project] [hours] [minutes]",
		Short: "Overwrite a project's accumulated time",
		Args:  cobra.MinimumNArgs(3),
		RunE:  r.handler("set-time"),
	}
	setTimeCmd.Flags().SetInterspersed(false)

	limitCmd := &cobra.Command{
		Use:   "limit",
		Short: "Set or adjust a project's time budget",
	}
	limitSetCmd := &cobra.Command{
		Use:   "set [project] [minutes]",
		Short: "Set the budget in minutes, 0 clears it",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.handler("limit", "set"),
	}
	limitAdjustCmd := &cobra.Command{
		Use:   "adjust [project] [hours]",
		Short: "Grow or shrink the budget by whole hours",
		Example: `  pt limit adjust "Client A" 2
  pt limit adjust "Client A" -1`,
		Args: cobra.MinimumNArgs(2),
		RunE: r.handler("limit", "adjust"),
	}
	limitSetCmd.Flags().SetInterspersed(false)
	limitAdjustCmd.Flags().SetInterspersed(false)
	limitCmd.AddCommand(limitSetCmd, limitAdjustCmd)

	reportCmd := &cobra.Command{
		Use:   "report [day|week|month]",
		Short: "Show time per project for the current period",
		Long: `Show the time each project logged since the start of the current
day, week or month. The running session is not included until it is
paused or stopped.

Formats: table (default), csv, json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format, _ := cmd.Flags().GetString("format"); format != "" {
				args = append(args, "format="+format)
			}
			return r.handler("report")(cmd, args)
		},
	}
	reportCmd.Flags().String("format", "table", "Output format: table, csv or json")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep running timers ticking and redraw the project list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := r.newApp(cmd)
			registered, _ := app.registry.Get("watch")
			if watch, ok := registered.(*WatchCommand); ok {
				watch.Clear, _ = cmd.Flags().GetBool("clear")
			}
			return app.Run(cmd.Context(), append([]string{"watch"}, args...))
		},
	}
	watchCmd.Flags().Bool("clear", true, "Redraw in place")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration file",
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := r.config.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.loader == nil {
				return fmt.Errorf("configuration not initialized")
			}
			path := r.loader.ConfigPath()
			if force, _ := cmd.Flags().GetBool("force"); !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			if err := r.loader.Save(r.config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", path)
			return nil
		},
	}
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		startCmd,
		pauseCmd,
		stopCmd,
		deleteCmd,
		setTimeCmd,
		limitCmd,
		reportCmd,
		watchCmd,
		configCmd,
	)
}
