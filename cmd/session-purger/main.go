package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	accountspostgres "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/persistence/postgres"
	apiapp "github.com/levaja/marketplace-api/internal/app/api"
	platformpostgres "github.com/levaja/marketplace-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := apiapp.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.Open(ctx, cfg.Postgres.DSN, apiapp.PostgresOptions(cfg), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	purged, err := accountspostgres.NewSessionStore(db).PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
