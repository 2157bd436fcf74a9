package main

import (
	"context"
	"log"

	"github.com/UnknownOlympus/staffstore/internal/config"
	"github.com/UnknownOlympus/staffstore/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	store, err := storage.Open(context.Background(), cfg, nil)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer store.Close()

	if migrationErr := store.Migrate(); migrationErr != nil {
		log.Fatal(migrationErr) //nolint:gocritic // exitAfterDefer
	}

	log.Println("✅ Migrations applied successfully")
}
