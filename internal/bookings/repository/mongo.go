package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	mongomigration "salonbook/internal/migrations/mongo"
	"salonbook/pkg/config"
	mongodb "salonbook/pkg/db/mongo"
	"salonbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoBooking adds the insertion sequence used to return bookings in the
// order they were admitted.
type mongoBooking struct {
	model.Booking `bson:",inline"`
	Seq           int64 `bson:"seq"`
}

type MongoStore struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	client, err := mongodb.Connect(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		return nil, err
	}

	collection := client.Database(cfg.MongoDatabaseName).Collection(mongomigration.BookingsCollection)

	initCtx, cancel := withTimeout(ctx, cfg.WriteTimeout)
	defer cancel()
	if err := mongomigration.EnsureIndexes(initCtx, collection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure booking indexes: %w", err)
	}

	cfg.Log.Info("Mongo booking store opened",
		"database", cfg.MongoDatabaseName,
		"collection", mongomigration.BookingsCollection,
	)
	return &MongoStore{cfg: cfg, client: client, collection: collection}, nil
}

func (s *MongoStore) LoadAll(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	defer cursor.Close(ctx)

	var docs []mongoBooking
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode bookings: %v", bookingserrors.ErrStorageRead, err)
	}

	bookings := make([]model.Booking, 0, len(docs))
	for _, doc := range docs {
		doc.Booking.CreatedAt = doc.Booking.CreatedAt.UTC()
		bookings = append(bookings, doc.Booking)
	}
	return bookings, nil
}

func (s *MongoStore) HasConflict(ctx context.Context, slot model.Slot) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"date": slot.Date, "time": slot.Time, "staff": slot.Staff}
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	return count > 0, nil
}

func (s *MongoStore) Append(ctx context.Context, booking model.Booking) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	doc := mongoBooking{Booking: booking, Seq: time.Now().UnixNano()}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotTaken
		}
		return fmt.Errorf("%w: %v", bookingserrors.ErrStorageWrite, err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return err
	}
	return nil
}
