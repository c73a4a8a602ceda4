package mongo

import (
	"context"
	"fmt"

	"salonbook/internal/migrations/mongo/validators"
	"salonbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BookingsCollection = "Bookings"
	SlotIndexName      = "uniq_booking_slot"
)

var BookingsIndexes = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
			{Key: "staff", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(SlotIndexName),
	},
	{Keys: bson.D{{Key: "seq", Value: 1}}},
}

// RunMigration creates the bookings collection with its schema validator and
// indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	if err := ensureCollection(ctx, db, BookingsCollection, validators.BookingValidator, log); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", BookingsCollection, err)
	}
	if err := EnsureIndexes(ctx, db.Collection(BookingsCollection)); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", BookingsCollection, err)
	}

	log.Info("All migrations applied successfully")
	return nil
}

// EnsureIndexes creates the bookings indexes, including the unique slot index
// that rejects a second booking for the same date, time and staff.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, BookingsIndexes)
	return err
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}
