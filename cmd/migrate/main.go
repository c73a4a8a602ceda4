package main

import (
	"context"
	"time"

	mongoMigration "salonbook/internal/migrations/mongo"
	"salonbook/pkg/config"
	mongodb "salonbook/pkg/db/mongo"
)

const JobName = "mongo-migration"

const migrationTimeout = 120 * time.Second

func main() {
	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			cfg.Log.Warn("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	if err := mongoMigration.RunMigration(ctx, client.Database(cfg.MongoDatabaseName), cfg.Log); err != nil {
		client.Disconnect(context.Background())
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
