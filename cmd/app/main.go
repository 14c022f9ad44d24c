package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Getenv, logger)
	stop()
	if err != nil {
		log.Fatalf("Orders service stopped: %v", err)
	}
}

// run serves until ctx is done. Adapters are closed before it returns.
func run(ctx context.Context, getenv func(string) string, logger *slog.Logger) error {
	if err := cmd.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}
	config, err := cmd.LoadConfig(getenv)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gormDB, err := cmd.OpenDatabase(config)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing adapters", "error", err)
		}
	}()

	return serve(ctx, app, config.HTTPPort, logger)
}

func serve(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := app.NewEcho()
	if err != nil {
		return err
	}

	jobManager, err := app.NewJobManager()
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("orders service listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
