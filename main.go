package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/rorycl/tdlayout/app"
	"github.com/rorycl/tdlayout/output"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main builds the application, runs the command given on the command line
// and reports the first failure.
func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "tdlayout",
		Level:  log.WarnLevel,
	})

	application := app.New(logger, output.NewSink())
	cmd := BuildCLI(application, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
