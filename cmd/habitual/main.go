// Package main is the entry point for the habitual CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MihkelHunter/habitual/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}
