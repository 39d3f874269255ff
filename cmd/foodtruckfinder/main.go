// Command foodtruckfinder lists the San Francisco food trucks open right now.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/rshade/foodtruckfinder/internal/cli"
	"github.com/rshade/foodtruckfinder/pkg/version"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the root command and maps its error to a process exit code.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// The first signal cancels in-flight requests; restoring default handling
	// lets a second one end a process blocked on the prompt.
	go func() {
		<-ctx.Done()
		stop()
	}()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode returns 0 for success, 130 for an interrupted session and 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}
