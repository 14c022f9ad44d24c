package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"orders/cmd"
	"orders/internal/adapters/in/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := cmd.LoadDotEnv(); err != nil {
		return err
	}
	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return err
	}
	if err := config.RequireDatabase(); err != nil {
		return fmt.Errorf("orders are stored in postgres, set DB_HOST: %w", err)
	}

	gormDB, err := cmd.OpenDatabase(config)
	if err != nil {
		return err
	}
	app, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(app.CLIHandlers())
	root.SetOut(os.Stdout)
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}
