// Warden - Credential and Session Authority
//
// This is the main entry point for the Warden service. Warden issues
// short-lived access tokens and cookie-borne renewal tokens against a
// local user store, with no server-side session state.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/wardenlabs/warden/migrations"

	"github.com/wardenlabs/warden/internal/api"
	"github.com/wardenlabs/warden/internal/audit"
	"github.com/wardenlabs/warden/internal/auth"
	"github.com/wardenlabs/warden/internal/infrastructure/config"
	"github.com/wardenlabs/warden/internal/infrastructure/database"
	"github.com/wardenlabs/warden/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Warden",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Session core: user store, one codec per token type, service on top.
	users := auth.NewUserRepository(db.DB)

	accessCodec, err := auth.NewTokenCodec(cfg.Security.Tokens.AccessSecret, cfg.AccessTokenTTL())
	if err != nil {
		return fmt.Errorf("creating access token codec: %w", err)
	}
	renewalCodec, err := auth.NewTokenCodec(cfg.Security.Tokens.RenewalSecret, cfg.RenewalTokenTTL())
	if err != nil {
		return fmt.Errorf("creating renewal token codec: %w", err)
	}

	sessions, err := auth.NewService(users, accessCodec, renewalCodec)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}

	// First boot on an empty user table seeds an admin account. The
	// generated password is logged once and must be rotated immediately.
	if _, seedErr := auth.SeedAdmin(ctx, users, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin account: %w", seedErr)
	}

	auditRepo := audit.NewSQLiteRepository(db.DB)

	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Security: cfg.Security,
		Logger:   log,
		Sessions: sessions,
		Audit:    auditRepo,
		DB:       db,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Warden stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses WARDEN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WARDEN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
