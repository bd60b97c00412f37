package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/bytehacks/bumblebee_service/internal/client"
	"github.com/bytehacks/bumblebee_service/internal/repository"
)

func main() {
	var (
		dbURL   string
		timeout time.Duration
	)

	flag.StringVar(&dbURL, "db", "", "Database URL (or set DATABASE_URL env var)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Connection and setup timeout")
	flag.Parse()

	// Get database URL from flag or environment
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("Database URL is required. Set -db flag or DATABASE_URL env var")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pg, err := client.NewPostgresClient(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pg.Close()

	repo := repository.NewPostgresDailyScoreRepository(pg)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create daily_scores schema: %v", err)
	}

	log.Println("daily_scores schema is up to date")
}
