package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pullpay/vault-deployer/internal/cli"
	"github.com/pullpay/vault-deployer/internal/config"
)

// Set through -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
