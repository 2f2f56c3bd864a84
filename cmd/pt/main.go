package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"project-timer/internal/cli"
	"project-timer/internal/config"
	"project-timer/internal/errors"
)

func main() {
	// Interrupts end watch cleanly and cancel any in-flight command
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(errors.ExitCode(err))
	}
}
