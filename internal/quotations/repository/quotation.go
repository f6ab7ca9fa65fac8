package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	quotationserrors "banquetdesk/internal/quotations/errors"
	"banquetdesk/pkg/config"
	mongotx "banquetdesk/pkg/db/mongo"
	"banquetdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Quotations"
)

type mongoQuotationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	FindByID(ctx context.Context, id string) (*model.Quotation, error)
	FindAll(ctx context.Context, status string, enquiryID string, limit int, offset int64) ([]*model.Quotation, error)
	Update(ctx context.Context, id string, quotation *model.Quotation) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status string, enquiryID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoQuotationRepository(cfg *config.Config) QuotationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoQuotationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoQuotationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func buildQuotationFilter(status string, enquiryID string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if enquiryID != "" {
		filter["enquiry_id"] = enquiryID
	}
	return filter
}

func (r *mongoQuotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	quotation.CreatedAt = now
	quotation.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, quotation)
	if err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quotation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoQuotationRepository) FindByID(ctx context.Context, id string) (*model.Quotation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", quotationserrors.ErrInvalidID, id)
	}

	var quotation model.Quotation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&quotation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, quotationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find quotation: %w", err)
	}

	return &quotation, nil
}

func (r *mongoQuotationRepository) FindAll(ctx context.Context, status string, enquiryID string, limit int, offset int64) ([]*model.Quotation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildQuotationFilter(status, enquiryID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find quotations: %w", err)
	}
	defer cursor.Close(ctx)

	var quotations []*model.Quotation
	if err = cursor.All(ctx, &quotations); err != nil {
		return nil, fmt.Errorf("failed to decode quotations: %w", err)
	}

	return quotations, nil
}

func (r *mongoQuotationRepository) Update(ctx context.Context, id string, quotation *model.Quotation) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", quotationserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"client_name": quotation.ClientName,
			"lines":       quotation.Lines,
			"subtotal":    quotation.Subtotal,
			"tax_percent": quotation.TaxPercent,
			"tax_amount":  quotation.TaxAmount,
			"total":       quotation.Total,
			"valid_until": quotation.ValidUntil,
			"status":      quotation.Status,
			"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, quotationserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoQuotationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", quotationserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	if result.DeletedCount == 0 {
		return quotationserrors.ErrNotFound
	}

	return nil
}

func (r *mongoQuotationRepository) Count(ctx context.Context, status string, enquiryID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildQuotationFilter(status, enquiryID))
	if err != nil {
		return 0, fmt.Errorf("failed to count quotations: %w", err)
	}

	return count, nil
}

func (r *mongoQuotationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
