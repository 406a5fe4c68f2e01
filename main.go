package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/kitchen-account/cmd/root"
	"fjacquet/kitchen-account/cmd/settle"
	"fjacquet/kitchen-account/cmd/stats"
	"fjacquet/kitchen-account/cmd/validate"
	"fjacquet/kitchen-account/internal/config"
)

func init() {
	// Load .env before the configuration reads the environment
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	root.Init()

	root.Cmd.AddCommand(settle.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
