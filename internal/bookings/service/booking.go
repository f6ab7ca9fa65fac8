package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	bookingserrors "banquetdesk/internal/bookings/errors"
	"banquetdesk/internal/bookings/repository"
	"banquetdesk/internal/bookings/validator"
	"banquetdesk/internal/conflict"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/contracts"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"
	"banquetdesk/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	CheckConflicts(ctx context.Context, candidate conflict.Candidate) (conflict.Result, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher contracts.EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher contracts.EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	// Advisory locks close the window between the conflict check and the
	// insert. One lock per distinct venue/date slot the booking occupies.
	lockIDs, err := s.acquireSlotLocks(ctx, booking)
	if err != nil {
		return err
	}
	defer s.releaseSlotLocks(ctx, lockIDs)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "client", booking.ClientName, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"client", booking.ClientName,
		"status", booking.Status,
		"sessions", len(booking.Sessions),
	)
	s.publishEvent(ctx, kafka.EventBookingCreated, booking.ID, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	lockIDs, err := s.acquireSlotLocks(ctx, merged)
	if err != nil {
		return err
	}
	defer s.releaseSlotLocks(ctx, lockIDs)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking updated", "id", id)
	event := kafka.EventBookingUpdated
	if updates.Status == model.BookingStatusCancelled {
		event = kafka.EventBookingCancelled
	}
	s.publishEvent(ctx, event, id, merged)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	s.publishEvent(ctx, kafka.EventBookingCancelled, id, map[string]string{"id": id})
	return nil
}

func (s *bookingService) Search(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search", "venue", filter.Venue, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindBySearch(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings", "venue", filter.Venue, "error", err)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// CheckConflicts is the advisory read-path check the booking form calls
// while the user types. The write path re-runs the same predicate inside
// a transaction, so a clean result here is a hint, not a guarantee.
func (s *bookingService) CheckConflicts(ctx context.Context, candidate conflict.Candidate) (conflict.Result, error) {
	candidate.Venue = sanitizer.TrimAndNormalize(candidate.Venue)
	if err := s.validator.ValidateCandidate(&candidate); err != nil {
		return conflict.Result{}, apperrors.Validation("Invalid conflict check input", map[string]any{"error": err.Error()})
	}

	bookings, err := s.repo.FindByVenue(ctx, candidate.Venue)
	if err != nil {
		return conflict.Result{}, apperrors.Internal("Failed to fetch bookings for conflict check", err)
	}

	return conflict.FindConflicts(candidate, bookings), nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.BookingStatusEnquiry
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.ClientName = sanitizer.SanitizeDisplayName(b.ClientName)
	b.EventType = sanitizer.SanitizeLabel(b.EventType)
	b.ContactPhone = sanitizer.SanitizePhone(b.ContactPhone)
	b.Notes = sanitizer.TrimAndNormalize(b.Notes)
	b.Hall = sanitizer.TrimAndNormalize(b.Hall)
	for i := range b.Sessions {
		b.Sessions[i].SessionName = sanitizer.SanitizeLabel(b.Sessions[i].SessionName)
		b.Sessions[i].Venue = sanitizer.TrimAndNormalize(b.Sessions[i].Venue)
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
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
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Hall != nil {
		merged.Hall = *updates.Hall
	}
	if updates.EventDate != nil {
		merged.EventDate = *updates.EventDate
	}
	if updates.EventStartTime != nil {
		merged.EventStartTime = *updates.EventStartTime
	}
	if updates.EventEndTime != nil {
		merged.EventEndTime = *updates.EventEndTime
	}
	if updates.Sessions != nil {
		merged.Sessions = *updates.Sessions
	}
	if updates.GuestCount != nil {
		merged.GuestCount = *updates.GuestCount
	}
	if updates.MenuPackageID != nil {
		merged.MenuPackageID = *updates.MenuPackageID
	}
	if updates.RoomsRequired != nil {
		merged.RoomsRequired = *updates.RoomsRequired
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// candidates derives one conflict-check window per occupancy the booking
// claims. Cancelled bookings occupy nothing.
func (s *bookingService) candidates(b *model.Booking) []conflict.Candidate {
	if b.Status == model.BookingStatusCancelled {
		return nil
	}

	if !b.IsLegacy() {
		out := make([]conflict.Candidate, 0, len(b.Sessions))
		for i := range b.Sessions {
			sess := &b.Sessions[i]
			out = append(out, conflict.Candidate{
				Venue:            sess.Venue,
				Date:             conflict.DatePart(sess.SessionDate),
				StartTime:        sess.StartTime,
				EndTime:          sess.EndTime,
				ExcludeBookingID: b.ID,
			})
		}
		return out
	}

	if b.Hall == "" || b.EventDate == "" {
		return nil
	}
	start := b.EventStartTime
	if start == "" {
		start = s.cfg.DayStart
	}
	end := b.EventEndTime
	if end == "" {
		end = s.cfg.DayEnd
	}
	return []conflict.Candidate{{
		Venue:            b.Hall,
		Date:             conflict.DatePart(b.EventDate),
		StartTime:        start,
		EndTime:          end,
		ExcludeBookingID: b.ID,
	}}
}

// verifyNoConflicts re-runs the occupancy predicate against current data.
// Called inside the write transaction so the check and the write commit
// atomically.
func (s *bookingService) verifyNoConflicts(ctx context.Context, booking *model.Booking) error {
	byVenue := map[string][]*model.Booking{}

	for _, c := range s.candidates(booking) {
		existing, ok := byVenue[c.Venue]
		if !ok {
			var err error
			existing, err = s.repo.FindByVenue(ctx, c.Venue)
			if err != nil {
				return apperrors.Internal("Failed to check existing bookings", err)
			}
			byVenue[c.Venue] = existing
		}

		result := conflict.FindConflicts(c, existing)
		if result.HasConflicts {
			first := result.Conflicts[0]
			return apperrors.Conflict(first.Message).WithDetails(map[string]any{
				"venue":         c.Venue,
				"date":          c.Date,
				"conflictCount": len(result.Conflicts),
			})
		}
	}

	return nil
}

// acquireSlotLocks takes one advisory lock per distinct venue/date slot,
// in sorted order so concurrent multi-session bookings cannot deadlock on
// each other's partial lock sets.
func (s *bookingService) acquireSlotLocks(ctx context.Context, booking *model.Booking) ([]string, error) {
	seen := map[string]struct{}{}
	var lockIDs []string
	for _, c := range s.candidates(booking) {
		id := fmt.Sprintf("booking_lock_%s_%s", c.Venue, c.Date)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		lockIDs = append(lockIDs, id)
	}
	sort.Strings(lockIDs)

	var acquired []string
	for _, lockID := range lockIDs {
		lock := &model.BookingLock{
			ID:        lockID,
			ExpiresAt: time.Now().Add(s.cfg.LockTTL),
		}
		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			s.releaseSlotLocks(ctx, acquired)
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict("This venue slot is currently being booked by another request. Please try again.")
			}
			return nil, apperrors.Internal("Failed to acquire booking lock", err)
		}
		acquired = append(acquired, lockID)
	}

	return acquired, nil
}

func (s *bookingService) releaseSlotLocks(ctx context.Context, lockIDs []string) {
	for _, lockID := range lockIDs {
		if err := s.lockRepo.Delete(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
		}
	}
}

func (s *bookingService) publishEvent(ctx context.Context, eventType, key string, payload any) {
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
