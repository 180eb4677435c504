package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const releaseVersion = "0.1.0"

func main() {
	// SIGINT arrives as a key press while the game owns the terminal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	opts := &options{}
	cobra.CheckErr(newRootCmd(opts).ExecuteContext(ctx))
}
