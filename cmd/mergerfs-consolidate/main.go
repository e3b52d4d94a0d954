package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/magma1447/mergerfs-tools/internal/cli"
)

func main() {
	// SIGPIPE is caught so a closed stdout surfaces as EPIPE instead of
	// killing the process mid-transfer.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGPIPE)
	defer stop()

	err := cli.NewRootCmd().ExecuteContext(ctx)
	code := cli.ExitCode(ctx, err, os.Stderr)
	stop()
	os.Exit(code)
}
