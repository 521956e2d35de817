package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	apiapp "github.com/levaja/marketplace-api/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := apiapp.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := apiapp.Run(ctx, cfg); err != nil {
		log.Fatalf("marketplace API exited: %v", err)
	}
}
