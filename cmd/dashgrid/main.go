// Command dashgrid lays out grid dashboards from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/dashgrid/internal/cli"
	dgerrors "github.com/matzehuels/dashgrid/pkg/errors"
)

// exitInterrupted follows the shell convention of 128+SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(report(err))
}

// report prints err to stderr and returns the exit status for it.
func report(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	if code := dgerrors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return dgerrors.ExitCode(err)
}
