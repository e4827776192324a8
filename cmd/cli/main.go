package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/boxalarm/dropletforge/cmd/cli/commands"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/prompt"
	"github.com/boxalarm/dropletforge/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file is optional; the token usually comes from the shell.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("failed to load .env file: %v", err)
	}
	logger.InitializeAndConfigure()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewRootCmd(commands.DefaultClientFactory, prompt.New())
	if err := cmd.ExecuteContext(ctx); err != nil {
		printer := ui.NewPrinter(os.Stderr)
		printer.Error("Error: %v", err)
		if hint := commands.ErrorHint(err); hint != "" {
			printer.Warn("%s", hint)
		}
		return 1
	}
	return 0
}
