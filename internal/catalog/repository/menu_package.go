package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogerrors "banquetdesk/internal/catalog/errors"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MenuPackageCollectionName = "Menu_packages"

type MenuPackageRepository interface {
	Create(ctx context.Context, pkg *model.MenuPackage) error
	FindByID(ctx context.Context, id string) (*model.MenuPackage, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*model.MenuPackage, error)
	Update(ctx context.Context, id string, pkg *model.MenuPackage) error
	Delete(ctx context.Context, id string) error
}

type mongoMenuPackageRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoMenuPackageRepository(cfg *config.Config) MenuPackageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMenuPackageRepository{
		cfg:        cfg,
		collection: db.Collection(MenuPackageCollectionName),
	}
}

func (r *mongoMenuPackageRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoMenuPackageRepository) Create(ctx context.Context, pkg *model.MenuPackage) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalogerrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create menu package: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.ID = oid.Hex()
	}
	return nil
}

func (r *mongoMenuPackageRepository) FindByID(ctx context.Context, id string) (*model.MenuPackage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	var pkg model.MenuPackage
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pkg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find menu package: %w", err)
	}

	return &pkg, nil
}

func (r *mongoMenuPackageRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.MenuPackage, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find menu packages: %w", err)
	}
	defer cursor.Close(ctx)

	var pkgs []*model.MenuPackage
	if err = cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("failed to decode menu packages: %w", err)
	}

	return pkgs, nil
}

func (r *mongoMenuPackageRepository) Update(ctx context.Context, id string, pkg *model.MenuPackage) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":            pkg.Name,
			"price_per_plate": pkg.PricePerPlate,
			"menu_type":       pkg.MenuType,
			"items":           pkg.Items,
			"active":          pkg.Active,
			"updated_at":      time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalogerrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to update menu package: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}

func (r *mongoMenuPackageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", catalogerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete menu package: %w", err)
	}
	if result.DeletedCount == 0 {
		return catalogerrors.ErrNotFound
	}

	return nil
}
