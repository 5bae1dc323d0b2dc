package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-friends-client/internal/app"
	"github.com/samvad-hq/samvad-friends-client/internal/config"
	"github.com/samvad-hq/samvad-friends-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "friends lookup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("friends client starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(cfg, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize app", "error", err)
		return err
	}

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("app run: %w", err)
	}

	return nil
}
