package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"banquetdesk/internal/migrations/mongo/validators"
	"banquetdesk/pkg/logger"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "sessions.venue", Value: 1},
			{Key: "sessions.session_date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "hall", Value: 1},
			{Key: "event_date", Value: 1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "salesperson_id", Value: 1}}},
	}

	EnquiriesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "salesperson_id", Value: 1}}},
	}

	QuotationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "enquiry_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "quote_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	CatalogNameIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// Expired locks are reaped by the server; a zero TTL expires documents
	// as soon as expires_at passes.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	ActivityLogIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "event_type", Value: 1},
			{Key: "recorded_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Enquiries": {
			Indexes:   EnquiriesIndexes,
			Validator: validators.EnquiryValidator,
		},
		"Quotations": {
			Indexes:   QuotationsIndexes,
			Validator: validators.QuotationValidator,
		},
		"Venues": {
			Indexes:   CatalogNameIndexes,
			Validator: validators.VenueValidator,
		},
		"Room_types": {
			Indexes:   CatalogNameIndexes,
			Validator: validators.RoomTypeValidator,
		},
		"Menu_packages": {
			Indexes:   CatalogNameIndexes,
			Validator: validators.MenuPackageValidator,
		},
		"Booking_locks": {
			Indexes:   BookingLocksIndexes,
			Validator: validators.BookingLockValidator,
		},
		"Activity_log": {
			Indexes: ActivityLogIndexes,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}

	log.Info("Collection exists, refreshing validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}

	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}

	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
