package service

import (
	"context"
	"errors"

	catalogerrors "banquetdesk/internal/catalog/errors"
	"banquetdesk/internal/catalog/repository"
	"banquetdesk/pkg/config"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/model"
	"banquetdesk/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// CatalogService manages the bookable inventory: venues, room types and
// menu packages. These are low-churn records edited by admins, so the
// write paths are plain CRUD without locking.
type CatalogService interface {
	CreateVenue(ctx context.Context, venue *model.Venue) error
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	ListVenues(ctx context.Context, activeOnly bool) ([]*model.Venue, error)
	UpdateVenue(ctx context.Context, id string, venue *model.Venue) error
	DeleteVenue(ctx context.Context, id string) error

	CreateRoomType(ctx context.Context, roomType *model.RoomType) error
	GetRoomType(ctx context.Context, id string) (*model.RoomType, error)
	ListRoomTypes(ctx context.Context, activeOnly bool) ([]*model.RoomType, error)
	UpdateRoomType(ctx context.Context, id string, roomType *model.RoomType) error
	DeleteRoomType(ctx context.Context, id string) error

	CreateMenuPackage(ctx context.Context, pkg *model.MenuPackage) error
	GetMenuPackage(ctx context.Context, id string) (*model.MenuPackage, error)
	ListMenuPackages(ctx context.Context, activeOnly bool) ([]*model.MenuPackage, error)
	UpdateMenuPackage(ctx context.Context, id string, pkg *model.MenuPackage) error
	DeleteMenuPackage(ctx context.Context, id string) error
}

type catalogService struct {
	venues   repository.VenueRepository
	rooms    repository.RoomTypeRepository
	menus    repository.MenuPackageRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewCatalogService(
	venues repository.VenueRepository,
	rooms repository.RoomTypeRepository,
	menus repository.MenuPackageRepository,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		venues:   venues,
		rooms:    rooms,
		menus:    menus,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// mapCatalogError translates repository sentinels to transport errors.
func mapCatalogError(err error, resource, id string) error {
	switch {
	case errors.Is(err, catalogerrors.ErrNotFound):
		if id != "" {
			return apperrors.NotFoundWithID(resource, id)
		}
		return apperrors.NotFound(resource)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid " + resource + " ID format")
	case errors.Is(err, catalogerrors.ErrDuplicateName):
		return apperrors.Conflict(resource + " with this name already exists")
	default:
		return apperrors.Internal("Catalog operation failed", err)
	}
}

// --- Venues ---

func (s *catalogService) CreateVenue(ctx context.Context, venue *model.Venue) error {
	venue.Name = sanitizer.TrimAndNormalize(venue.Name)
	if err := s.validate.Struct(venue); err != nil {
		return apperrors.Validation("Venue validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		s.cfg.Log.Error("Failed to create venue", "name", venue.Name, "error", err)
		return mapCatalogError(err, "Venue", "")
	}

	s.cfg.Log.Info("Venue created", "id", venue.ID, "name", venue.Name)
	return nil
}

func (s *catalogService) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}
	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err, "Venue", id)
	}
	return venue, nil
}

func (s *catalogService) ListVenues(ctx context.Context, activeOnly bool) ([]*model.Venue, error) {
	venues, err := s.venues.FindAll(ctx, activeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to list venues", "error", err)
		return nil, apperrors.Internal("Failed to retrieve venues", err)
	}
	return venues, nil
}

func (s *catalogService) UpdateVenue(ctx context.Context, id string, venue *model.Venue) error {
	venue.Name = sanitizer.TrimAndNormalize(venue.Name)
	if err := s.validate.Struct(venue); err != nil {
		return apperrors.Validation("Venue validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.venues.Update(ctx, id, venue); err != nil {
		return mapCatalogError(err, "Venue", id)
	}

	s.cfg.Log.Info("Venue updated", "id", id)
	return nil
}

func (s *catalogService) DeleteVenue(ctx context.Context, id string) error {
	if err := s.venues.Delete(ctx, id); err != nil {
		return mapCatalogError(err, "Venue", id)
	}
	s.cfg.Log.Info("Venue deleted", "id", id)
	return nil
}

// --- Room types ---

func (s *catalogService) CreateRoomType(ctx context.Context, roomType *model.RoomType) error {
	roomType.Name = sanitizer.TrimAndNormalize(roomType.Name)
	if err := s.validate.Struct(roomType); err != nil {
		return apperrors.Validation("Room type validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.rooms.Create(ctx, roomType); err != nil {
		s.cfg.Log.Error("Failed to create room type", "name", roomType.Name, "error", err)
		return mapCatalogError(err, "Room type", "")
	}

	s.cfg.Log.Info("Room type created", "id", roomType.ID, "name", roomType.Name)
	return nil
}

func (s *catalogService) GetRoomType(ctx context.Context, id string) (*model.RoomType, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room type ID cannot be empty")
	}
	roomType, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err, "Room type", id)
	}
	return roomType, nil
}

func (s *catalogService) ListRoomTypes(ctx context.Context, activeOnly bool) ([]*model.RoomType, error) {
	roomTypes, err := s.rooms.FindAll(ctx, activeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to list room types", "error", err)
		return nil, apperrors.Internal("Failed to retrieve room types", err)
	}
	return roomTypes, nil
}

func (s *catalogService) UpdateRoomType(ctx context.Context, id string, roomType *model.RoomType) error {
	roomType.Name = sanitizer.TrimAndNormalize(roomType.Name)
	if err := s.validate.Struct(roomType); err != nil {
		return apperrors.Validation("Room type validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.rooms.Update(ctx, id, roomType); err != nil {
		return mapCatalogError(err, "Room type", id)
	}

	s.cfg.Log.Info("Room type updated", "id", id)
	return nil
}

func (s *catalogService) DeleteRoomType(ctx context.Context, id string) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return mapCatalogError(err, "Room type", id)
	}
	s.cfg.Log.Info("Room type deleted", "id", id)
	return nil
}

// --- Menu packages ---

func (s *catalogService) CreateMenuPackage(ctx context.Context, pkg *model.MenuPackage) error {
	pkg.Name = sanitizer.TrimAndNormalize(pkg.Name)
	pkg.Items = sanitizer.SanitizeSlice(pkg.Items, sanitizer.TrimAndNormalize)
	if err := s.validate.Struct(pkg); err != nil {
		return apperrors.Validation("Menu package validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.menus.Create(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create menu package", "name", pkg.Name, "error", err)
		return mapCatalogError(err, "Menu package", "")
	}

	s.cfg.Log.Info("Menu package created", "id", pkg.ID, "name", pkg.Name)
	return nil
}

func (s *catalogService) GetMenuPackage(ctx context.Context, id string) (*model.MenuPackage, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Menu package ID cannot be empty")
	}
	pkg, err := s.menus.FindByID(ctx, id)
	if err != nil {
		return nil, mapCatalogError(err, "Menu package", id)
	}
	return pkg, nil
}

func (s *catalogService) ListMenuPackages(ctx context.Context, activeOnly bool) ([]*model.MenuPackage, error) {
	pkgs, err := s.menus.FindAll(ctx, activeOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to list menu packages", "error", err)
		return nil, apperrors.Internal("Failed to retrieve menu packages", err)
	}
	return pkgs, nil
}

func (s *catalogService) UpdateMenuPackage(ctx context.Context, id string, pkg *model.MenuPackage) error {
	pkg.Name = sanitizer.TrimAndNormalize(pkg.Name)
	pkg.Items = sanitizer.SanitizeSlice(pkg.Items, sanitizer.TrimAndNormalize)
	if err := s.validate.Struct(pkg); err != nil {
		return apperrors.Validation("Menu package validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.menus.Update(ctx, id, pkg); err != nil {
		return mapCatalogError(err, "Menu package", id)
	}

	s.cfg.Log.Info("Menu package updated", "id", id)
	return nil
}

func (s *catalogService) DeleteMenuPackage(ctx context.Context, id string) error {
	if err := s.menus.Delete(ctx, id); err != nil {
		return mapCatalogError(err, "Menu package", id)
	}
	s.cfg.Log.Info("Menu package deleted", "id", id)
	return nil
}
