package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	enquirieserrors "banquetdesk/internal/enquiries/errors"
	"banquetdesk/pkg/config"
	mongotx "banquetdesk/pkg/db/mongo"
	"banquetdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Enquiries"
)

type mongoEnquiryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	FindByID(ctx context.Context, id string) (*model.Enquiry, error)
	FindAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, error)
	Update(ctx context.Context, id string, enquiry *model.Enquiry) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoEnquiryRepository(cfg *config.Config) EnquiryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEnquiryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoEnquiryRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoEnquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		enquiry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoEnquiryRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", enquirieserrors.ErrInvalidID, id)
	}

	var enquiry model.Enquiry
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&enquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, enquirieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enquiry: %w", err)
	}

	return &enquiry, nil
}

func (r *mongoEnquiryRepository) FindAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var enquiries []*model.Enquiry
	if err = cursor.All(ctx, &enquiries); err != nil {
		return nil, fmt.Errorf("failed to decode enquiries: %w", err)
	}

	return enquiries, nil
}

func (r *mongoEnquiryRepository) Update(ctx context.Context, id string, enquiry *model.Enquiry) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", enquirieserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"client_name":     enquiry.ClientName,
			"contact_phone":   enquiry.ContactPhone,
			"event_type":      enquiry.EventType,
			"expected_guests": enquiry.ExpectedGuests,
			"preferred_venue": enquiry.PreferredVenue,
			"event_date":      enquiry.EventDate,
			"status":          enquiry.Status,
			"follow_up_at":    enquiry.FollowUpAt,
			"notes":           enquiry.Notes,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update enquiry: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, enquirieserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoEnquiryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", enquirieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	if result.DeletedCount == 0 {
		return enquirieserrors.ErrNotFound
	}

	return nil
}

func (r *mongoEnquiryRepository) Count(ctx context.Context, status string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	return count, nil
}

func (r *mongoEnquiryRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
