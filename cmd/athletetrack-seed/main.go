package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/athletetrack/athletetrack/internal/config"
	"github.com/athletetrack/athletetrack/internal/seed"
	"github.com/athletetrack/athletetrack/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	adminEmail := flag.String("admin-email", "admin@athletetrack.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required on first run)")
	adminName := flag.String("admin-name", "Administrator", "admin account display name")
	demoAthletes := flag.Int("demo-athletes", 0, "number of fake demo athletes to create")
	demoWorkouts := flag.Int("demo-workouts", 25, "workouts per demo athlete")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("athletetrack-seed", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := seed.OpenStateDB(filepath.Join(homeDir, ".athletetrack-seed"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	seeder := seed.New(db, state, log)

	if *adminPassword != "" {
		if err := seeder.EnsureAdmin(ctx, *adminEmail, *adminPassword, *adminName); err != nil {
			log.Error("admin seeding failed", "error", err)
			os.Exit(1)
		}
	}

	if err := seeder.SeedCatalog(ctx); err != nil {
		log.Error("catalog seeding failed", "error", err)
		os.Exit(1)
	}

	if *demoAthletes > 0 {
		if err := seeder.SeedDemo(ctx, *demoAthletes, *demoWorkouts); err != nil {
			log.Error("demo seeding failed", "error", err)
			os.Exit(1)
		}
	}

	log.Info("seeding complete")
}
