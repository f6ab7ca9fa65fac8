package service

import (
	"context"
	"errors"
	"sync"

	bookingservice "banquetdesk/internal/bookings/service"
	enquirieserrors "banquetdesk/internal/enquiries/errors"
	"banquetdesk/internal/enquiries/repository"
	"banquetdesk/internal/enquiries/validator"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/contracts"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"
	"banquetdesk/pkg/sanitizer"
)

type EnquiryService interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	GetByID(ctx context.Context, id string) (*model.Enquiry, error)
	GetAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, int64, error)
	Update(ctx context.Context, id string, updates *model.EnquiryUpdate) error
	Delete(ctx context.Context, id string) error
	Convert(ctx context.Context, id string) (*model.Booking, error)
}

type enquiryService struct {
	repo       repository.EnquiryRepository
	bookingSvc bookingservice.BookingService
	validator  *validator.EnquiryValidator
	publisher  contracts.EventPublisher
	cfg        *config.Config
}

func NewEnquiryService(
	repo repository.EnquiryRepository,
	bookingSvc bookingservice.BookingService,
	validator *validator.EnquiryValidator,
	publisher contracts.EventPublisher,
	cfg *config.Config,
) EnquiryService {
	return &enquiryService{
		repo:       repo,
		bookingSvc: bookingSvc,
		validator:  validator,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func (s *enquiryService) Create(ctx context.Context, enquiry *model.Enquiry) error {
	if enquiry.Status == "" {
		enquiry.Status = model.EnquiryStatusNew
	}
	s.sanitize(enquiry)
	if err := s.validate(enquiry); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, enquiry); err != nil {
		s.cfg.Log.Error("Failed to create enquiry", "client", enquiry.ClientName, "error", err)
		return apperrors.Internal("Failed to create enquiry", err)
	}

	s.cfg.Log.Info("Enquiry created", "id", enquiry.ID, "client", enquiry.ClientName)
	s.publishEvent(ctx, kafka.EventEnquiryCreated, enquiry.ID, enquiry)
	return nil
}

func (s *enquiryService) GetByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, enquirieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Enquiry", id)
		}
		if errors.Is(err, enquirieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid enquiry ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve enquiry", err)
	}

	return enquiry, nil
}

func (s *enquiryService) GetAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, int64, error) {
	var count int64
	var enquiries []*model.Enquiry
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count enquiries", "error", errCount)
			errCount = apperrors.Internal("Failed to count enquiries", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		enquiries, errFind = s.repo.FindAll(ctx, status, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list enquiries", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve enquiries", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return enquiries, count, nil
}

func (s *enquiryService) Update(ctx context.Context, id string, updates *model.EnquiryUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Enquiry ID cannot be empty")
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// A converted enquiry is frozen; its booking is the record of truth.
	if existing.Status == model.EnquiryStatusConverted {
		return apperrors.Conflict("Enquiry has already been converted and can no longer be edited")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Enquiry update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeEnquiryUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, enquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Enquiry", id)
		}
		s.cfg.Log.Error("Failed to update enquiry", "id", id, "error", err)
		return apperrors.Internal("Failed to update enquiry", err)
	}

	s.cfg.Log.Info("Enquiry updated", "id", id)
	return nil
}

func (s *enquiryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, enquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Enquiry", id)
		}
		if errors.Is(err, enquirieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid enquiry ID format")
		}
		return apperrors.Internal("Failed to delete enquiry", err)
	}

	s.cfg.Log.Info("Enquiry deleted", "id", id)
	return nil
}

// Convert turns an enquiry into a tentative booking. The booking goes
// through the full create path, including slot locking and conflict
// verification, so a venue clash surfaces here as a 409. Only after the
// booking lands is the enquiry frozen in the converted status.
func (s *enquiryService) Convert(ctx context.Context, id string) (*model.Booking, error) {
	enquiry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if enquiry.Status == model.EnquiryStatusConverted {
		return nil, apperrors.Conflict("Enquiry has already been converted")
	}
	if enquiry.Status == model.EnquiryStatusLost {
		return nil, apperrors.Conflict("A lost enquiry cannot be converted")
	}

	booking := s.bookingFromEnquiry(enquiry)
	if err := s.bookingSvc.Create(ctx, booking); err != nil {
		return nil, err
	}

	enquiry.Status = model.EnquiryStatusConverted
	if _, err := s.repo.Update(ctx, id, enquiry); err != nil {
		// The booking exists; losing the status flip leaves a re-convertible
		// enquiry rather than a lost booking, so report but do not roll back.
		s.cfg.Log.Error("Booking created but enquiry status update failed",
			"enquiry_id", id,
			"booking_id", booking.ID,
			"error", err,
		)
		return booking, apperrors.Internal("Booking created but enquiry update failed", err)
	}

	s.cfg.Log.Info("Enquiry converted", "enquiry_id", id, "booking_id", booking.ID)
	s.publishEvent(ctx, kafka.EventEnquiryConverted, id, map[string]string{
		"enquiryId": id,
		"bookingId": booking.ID,
	})
	return booking, nil
}

// --- Helpers ---

func (s *enquiryService) sanitize(e *model.Enquiry) {
	e.ClientName = sanitizer.SanitizeDisplayName(e.ClientName)
	e.EventType = sanitizer.SanitizeLabel(e.EventType)
	e.ContactPhone = sanitizer.SanitizePhone(e.ContactPhone)
	e.PreferredVenue = sanitizer.TrimAndNormalize(e.PreferredVenue)
	e.Notes = sanitizer.TrimAndNormalize(e.Notes)
}

func (s *enquiryService) validate(enquiry *model.Enquiry) error {
	if err := s.validator.Validate(enquiry); err != nil {
		s.cfg.Log.Warn("Enquiry validation failed", "error", err)
		return apperrors.Validation("Enquiry validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *enquiryService) mergeEnquiryUpdates(existing *model.Enquiry, updates *model.EnquiryUpdate) *model.Enquiry {
	merged := *existing

	if updates.ClientName != "" {
		merged.ClientName = updates.ClientName
	}
	if updates.ContactPhone != nil {
		merged.ContactPhone = *updates.ContactPhone
	}
	if updates.EventType != "" {
		merged.EventType = updates.EventType
	}
	if updates.ExpectedGuests != nil {
		merged.ExpectedGuests = *updates.ExpectedGuests
	}
	if updates.PreferredVenue != nil {
		merged.PreferredVenue = *updates.PreferredVenue
	}
	if updates.EventDate != nil {
		merged.EventDate = *updates.EventDate
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.FollowUpAt != nil {
		merged.FollowUpAt = updates.FollowUpAt
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

// bookingFromEnquiry carries the lead's details, including the ownership
// fields, onto the new tentative booking.
func (s *enquiryService) bookingFromEnquiry(e *model.Enquiry) *model.Booking {
	return &model.Booking{
		ClientName:    e.ClientName,
		ContactPhone:  e.ContactPhone,
		EventType:     e.EventType,
		Status:        model.BookingStatusTentative,
		Hall:          e.PreferredVenue,
		EventDate:     e.EventDate,
		GuestCount:    e.ExpectedGuests,
		SalespersonID: e.SalespersonID,
		CreatedBy:     e.CreatedBy,
		Salesperson:   e.Salesperson,
		Notes:         e.Notes,
	}
}

func (s *enquiryService) publishEvent(ctx context.Context, eventType, key string, payload any) {
	if s.publisher == nil {
		return
	}

	builder := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource("banquetdesk")

	if actor := middleware.ActorFromContext(ctx); actor != nil {
		builder.WithActorID(actor.ID.String())
	}

	if err := s.publisher.Publish(ctx, builder.Build()); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}
