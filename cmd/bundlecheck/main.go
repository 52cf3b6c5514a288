// Package main is the entry point for the bundlecheck CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thoreinstein/bundlecheck/cmd/bundlecheck/commands"
	"github.com/thoreinstein/bundlecheck/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()

	if err != nil && !errors.Is(err, errors.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
	}
	os.Exit(errors.ExitCode(err))
}
