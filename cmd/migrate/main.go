package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CoworkingService/internal/config"
	"github.com/m04kA/SMC-CoworkingService/migrations"
	"github.com/m04kA/SMC-CoworkingService/pkg/logger"
)

func main() {
	var configPath string
	var command string

	flag.StringVar(&configPath, "config", "config.toml", "Path to config file")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, version, force")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := migrations.New(db)
	if err != nil {
		log.Fatal("Failed to create migration instance: %v", err)
	}

	switch command {
	case "up":
		log.Info("Running migrations up...")
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No migrations to run (database is up to date)")
			return
		}
		if err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Migrations completed successfully")

	case "down":
		log.Info("Rolling back migrations...")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Failed to rollback migrations: %v", err)
		}
		log.Info("Rollback completed successfully")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version: %v", err)
		}
		log.Info("Current version: %d (dirty: %v)", version, dirty)

	case "force":
		if len(flag.Args()) < 1 {
			log.Fatal("Force command requires a version number: -command force <version>")
		}
		var version int
		if _, err := fmt.Sscanf(flag.Arg(0), "%d", &version); err != nil {
			log.Fatal("Invalid version number: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Failed to force version: %v", err)
		}
		log.Info("Forced version to: %d", version)

	default:
		log.Fatal("Unknown command: %s (use: up, down, version, force)", command)
	}
}
