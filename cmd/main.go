package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/yungbote/experience-marketplace/internal/app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "experience-marketplace: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("experience-marketplace", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	addr := flags.String("addr", "", "listen address, e.g. :8080 (overrides PORT)")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	shutdownTimeout := flags.Duration("shutdown-timeout", 15*time.Second, "grace period for in-flight requests")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Env
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", *envFile, err)
		}
	}
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- a.Run(cfg.Addr) }()

	select {
	case err := <-serveErr:
		_ = a.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		a.Log.Warn("Graceful shutdown incomplete", "error", err)
	}
	if err := <-serveErr; err != nil {
		a.Log.Error("Server exited with error", "error", err)
	}
	return a.Close(shutdownCtx)
}
