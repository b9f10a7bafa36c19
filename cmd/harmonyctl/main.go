package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/harmony/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.RootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("harmonyctl: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
