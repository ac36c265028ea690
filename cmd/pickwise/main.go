package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pickwise/internal/cli"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pickwise: %v\n", err)
		cancel()
		os.Exit(cli.GetExitCode(err))
	}
}
