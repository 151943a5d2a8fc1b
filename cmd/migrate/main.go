// Package main provides a CLI tool for running the Postgres backend migrations.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vibe-guide/internal/config"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/storage"
)

func main() {
	action := flag.String("action", "up", "Migration action: up, down, version")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.InitGlobalLogger(
		logging.ParseLogLevel(cfg.Logging.Level),
		logging.ParseLogFormat(cfg.Logging.Format),
	)

	if err := runPostgresMigrations(logger, cfg, *action); err != nil {
		logger.WithError(err).Error("Postgres migration failed")
		os.Exit(1)
	}
}

func runPostgresMigrations(logger *logging.Logger, cfg *config.Config, action string) error {
	databaseURL := cfg.Storage.Postgres.URL()

	switch action {
	case "up":
		logger.Info("Running Postgres migrations...")
		if err := storage.RunMigrations(databaseURL); err != nil {
			return err
		}
		logger.Info("Postgres migrations completed successfully")

	case "down":
		logger.Info("Rolling back Postgres migration...")
		if err := storage.RollbackMigrations(databaseURL); err != nil {
			return err
		}
		logger.Info("Postgres migration rolled back successfully")

	case "version":
		version, dirty, err := storage.MigrationVersion(databaseURL)
		if err != nil {
			return err
		}
		logger.Infof("Current Postgres migration version: %d (dirty: %v)", version, dirty)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	return nil
}
