package main

import (
	"fmt"
	"os"
	"strconv"

	"fintrack/internal/database"
	"fintrack/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version|force> [N]")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	m, err := migrate.New("file://migrations", dbConfig.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	command := os.Args[1]

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Info("Rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		logger.Get().Infof("Version: %d, dirty: %v", version, dirty)
	case "force":
		if len(os.Args) < 3 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", os.Args[2], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("migration force failed: %w", err)
		}
		logger.Get().Infof("Forced version to %d", version)
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}
