package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GLee998/church-database-bot/internal/app"
	"github.com/GLee998/church-database-bot/internal/config"
	"github.com/GLee998/church-database-bot/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file (ROSTER_* variables override it)")
	seedPath := flag.String("seed", "", "YAML fixture to load into an empty store before starting")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath, *seedPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, seedPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Church roster server starting",
		"version", Version,
		"backend", cfg.Backend.Kind,
		"intent_provider", cfg.Intent.Provider,
		"address", cfg.Server.Address)

	a, err := app.New(ctx, cfg, logger, app.Options{Version: Version})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to close resources", "error", err)
		}
	}()

	if seedPath != "" {
		fixture, err := app.LoadFixture(seedPath)
		if err != nil {
			return err
		}
		n, err := app.Seed(ctx, a.Backend, a.Schema, fixture)
		if err != nil {
			return err
		}
		logger.Info("Fixture loaded", "path", seedPath, "added", n)
	}

	if err := a.Run(ctx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("Church Roster Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
