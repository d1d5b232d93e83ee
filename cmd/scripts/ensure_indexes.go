package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/pkg/mongodb"
)

// Standalone index bootstrap, useful before first deploy or after a restore.
func main() {
	_ = godotenv.Load()

	uri := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	database := config.GetEnv("MONGODB_DATABASE", "wakqa")
	timeout := time.Duration(config.GetEnvAsInt("INDEX_TIMEOUT_SECONDS", 30)) * time.Second

	client, err := mongodb.NewClient(uri)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx, client.Database(database)); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	log.Printf("Indexes ensured on %s", database)
}
