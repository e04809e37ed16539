// Package main is the entry point for the todocli CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todocli/internal/backend/localstore"
	"todocli/internal/backend/todoapi"
	"todocli/internal/cache"
	"todocli/internal/cli"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/device"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func main() {
	// Create context that cancels on interrupt. Cancelling also aborts
	// any pending cache reads, which is how a session ends cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newClient)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newClient wires the per-session task client: session storage, the
// remote or offline backend, the cache, and the device locator.
func newClient(ctx context.Context, cfg *config.Config) (*tasks.Client, error) {
	logger := newLogger(cfg)

	store := cache.New(cfg.StaleTTL)

	if cfg.Offline {
		svc := localstore.New(cfg.TasksPath(), logger)
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
		return tasks.New(tasks.Config{
			Service: svc,
			Cache:   store,
			Locator: device.EnvLocator{},
			Logger:  logger,
		}), nil
	}

	sessions := session.NewStore(cfg.SessionPath(), cfg.TokenPath())
	svc, err := todoapi.New(cfg, sessions, logger)
	if err != nil {
		return nil, err
	}
	return tasks.New(tasks.Config{
		Service:  svc,
		Cache:    store,
		Uploader: svc,
		Remover:  svc,
		Locator:  device.EnvLocator{},
		Logger:   logger,
	}), nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
