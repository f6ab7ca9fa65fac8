package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	catalogservice "banquetdesk/internal/catalog/service"
	enquiriesservice "banquetdesk/internal/enquiries/service"
	quotationserrors "banquetdesk/internal/quotations/errors"
	"banquetdesk/internal/quotations/repository"
	"banquetdesk/internal/quotations/validator"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/contracts"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"
	"banquetdesk/pkg/sanitizer"

	"github.com/google/uuid"
)

type QuotationService interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	Generate(ctx context.Context, req *validator.GenerateRequest) (*model.Quotation, error)
	GetByID(ctx context.Context, id string) (*model.Quotation, error)
	GetAll(ctx context.Context, status string, enquiryID string, limit int, offset int64) ([]*model.Quotation, int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

type quotationService struct {
	repo       repository.QuotationRepository
	enquirySvc enquiriesservice.EnquiryService
	catalogSvc catalogservice.CatalogService
	validator  *validator.QuotationValidator
	publisher  contracts.EventPublisher
	cfg        *config.Config
}

func NewQuotationService(
	repo repository.QuotationRepository,
	enquirySvc enquiriesservice.EnquiryService,
	catalogSvc catalogservice.CatalogService,
	validator *validator.QuotationValidator,
	publisher contracts.EventPublisher,
	cfg *config.Config,
) QuotationService {
	return &quotationService{
		repo:       repo,
		enquirySvc: enquirySvc,
		catalogSvc: catalogSvc,
		validator:  validator,
		publisher:  publisher,
		cfg:        cfg,
	}
}

func (s *quotationService) Create(ctx context.Context, quotation *model.Quotation) error {
	s.applyDefaults(quotation)
	s.recomputeTotals(quotation)
	quotation.ClientName = sanitizer.SanitizeDisplayName(quotation.ClientName)

	if err := s.validate(quotation); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, quotation); err != nil {
		s.cfg.Log.Error("Failed to create quotation", "enquiry_id", quotation.EnquiryID, "error", err)
		return apperrors.Internal("Failed to create quotation", err)
	}

	s.cfg.Log.Info("Quotation created",
		"id", quotation.ID,
		"quote_number", quotation.QuoteNumber,
		"total", quotation.Total,
	)
	s.publishEvent(ctx, quotation)
	return nil
}

// Generate prices a quotation from the enquiry and the current catalog.
// Only the lines the request names are priced. The source enquiry moves to
// the quoted status on a best-effort basis; a frozen enquiry stays as is.
func (s *quotationService) Generate(ctx context.Context, req *validator.GenerateRequest) (*model.Quotation, error) {
	if err := s.validator.ValidateGenerateRequest(req); err != nil {
		s.cfg.Log.Warn("Quotation generate request rejected", "error", err)
		return nil, apperrors.Validation("Invalid quotation request", map[string]any{"error": err.Error()})
	}

	enquiry, err := s.enquirySvc.GetByID(ctx, req.EnquiryID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to load enquiry for quotation", quotationserrors.ErrEnquiryMissing)
	}

	lines, err := s.priceLines(ctx, req, enquiry)
	if err != nil {
		return nil, err
	}

	taxPercent := s.cfg.DefaultTaxPercent
	if req.TaxPercent != nil {
		taxPercent = sanitizer.ClampTaxPercent(*req.TaxPercent)
	}

	quotation := &model.Quotation{
		QuoteNumber:   newQuoteNumber(),
		EnquiryID:     req.EnquiryID,
		ClientName:    enquiry.ClientName,
		Lines:         lines,
		TaxPercent:    taxPercent,
		ValidUntil:    time.Now().UTC().AddDate(0, 0, s.cfg.QuoteValidityDays),
		Status:        model.QuotationStatusDraft,
		SalespersonID: enquiry.SalespersonID,
		CreatedBy:     enquiry.CreatedBy,
	}
	if quotation.CreatedBy.IsZero() {
		if actor := middleware.ActorFromContext(ctx); actor != nil {
			quotation.CreatedBy = actor.ID
		}
	}
	s.recomputeTotals(quotation)

	if err := s.validate(quotation); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, quotation); err != nil {
		s.cfg.Log.Error("Failed to store generated quotation", "enquiry_id", req.EnquiryID, "error", err)
		return nil, apperrors.Internal("Failed to create quotation", err)
	}

	s.markEnquiryQuoted(ctx, enquiry)

	s.cfg.Log.Info("Quotation generated",
		"id", quotation.ID,
		"quote_number", quotation.QuoteNumber,
		"enquiry_id", req.EnquiryID,
		"total", quotation.Total,
	)
	s.publishEvent(ctx, quotation)
	return quotation, nil
}

func (s *quotationService) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Quotation ID cannot be empty")
	}

	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, quotationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Quotation", id)
		}
		if errors.Is(err, quotationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid quotation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve quotation", err)
	}

	return quotation, nil
}

func (s *quotationService) GetAll(ctx context.Context, status string, enquiryID string, limit int, offset int64) ([]*model.Quotation, int64, error) {
	var count int64
	var quotations []*model.Quotation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, status, enquiryID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count quotations", "error", errCount)
			errCount = apperrors.Internal("Failed to count quotations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		quotations, errFind = s.repo.FindAll(ctx, status, enquiryID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list quotations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve quotations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return quotations, count, nil
}

func (s *quotationService) UpdateStatus(ctx context.Context, id string, status string) error {
	if !validQuotationStatus(status) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid quotation status: %s", status))
	}

	quotation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Accepted and rejected quotes are terminal.
	if quotation.Status == model.QuotationStatusAccepted || quotation.Status == model.QuotationStatusRejected {
		return apperrors.Conflict(fmt.Sprintf("Quotation is already %s", quotation.Status))
	}

	quotation.Status = status
	if _, err := s.repo.Update(ctx, id, quotation); err != nil {
		if errors.Is(err, quotationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Quotation", id)
		}
		s.cfg.Log.Error("Failed to update quotation status", "id", id, "error", err)
		return apperrors.Internal("Failed to update quotation", err)
	}

	s.cfg.Log.Info("Quotation status updated", "id", id, "status", status)
	return nil
}

func (s *quotationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Quotation ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, quotationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Quotation", id)
		}
		if errors.Is(err, quotationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid quotation ID format")
		}
		return apperrors.Internal("Failed to delete quotation", err)
	}

	s.cfg.Log.Info("Quotation deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *quotationService) priceLines(ctx context.Context, req *validator.GenerateRequest, enquiry *model.Enquiry) ([]model.QuotationLine, error) {
	var lines []model.QuotationLine

	if req.VenueID != "" {
		venue, err := s.catalogSvc.GetVenue(ctx, req.VenueID)
		if err != nil {
			return nil, err
		}
		days := req.Days
		if days == 0 {
			days = 1
		}
		lines = append(lines, model.QuotationLine{
			Description: fmt.Sprintf("Venue: %s", venue.Name),
			Quantity:    float64(days),
			UnitPrice:   venue.PricePerDay,
			Amount:      round2(float64(days) * venue.PricePerDay),
		})
	}

	if req.MenuPackageID != "" {
		pkg, err := s.catalogSvc.GetMenuPackage(ctx, req.MenuPackageID)
		if err != nil {
			return nil, err
		}
		guests := req.Guests
		if guests == 0 {
			guests = enquiry.ExpectedGuests
		}
		if guests <= 0 {
			return nil, apperrors.InvalidInput("Guest count is required to price a menu package")
		}
		lines = append(lines, model.QuotationLine{
			Description: fmt.Sprintf("Menu: %s", pkg.Name),
			Quantity:    float64(guests),
			UnitPrice:   pkg.PricePerPlate,
			Amount:      round2(float64(guests) * pkg.PricePerPlate),
		})
	}

	if req.RoomTypeID != "" {
		roomType, err := s.catalogSvc.GetRoomType(ctx, req.RoomTypeID)
		if err != nil {
			return nil, err
		}
		rooms := req.Rooms
		if rooms == 0 {
			rooms = 1
		}
		nights := req.Nights
		if nights == 0 {
			nights = 1
		}
		lines = append(lines, model.QuotationLine{
			Description: fmt.Sprintf("Rooms: %s x%d", roomType.Name, rooms),
			Quantity:    float64(rooms * nights),
			UnitPrice:   roomType.PricePerNight,
			Amount:      round2(float64(rooms*nights) * roomType.PricePerNight),
		})
	}

	return lines, nil
}

func (s *quotationService) applyDefaults(quotation *model.Quotation) {
	if quotation.Status == "" {
		quotation.Status = model.QuotationStatusDraft
	}
	if quotation.QuoteNumber == "" {
		quotation.QuoteNumber = newQuoteNumber()
	}
	if quotation.TaxPercent == 0 {
		quotation.TaxPercent = s.cfg.DefaultTaxPercent
	} else {
		quotation.TaxPercent = sanitizer.ClampTaxPercent(quotation.TaxPercent)
	}
	if quotation.ValidUntil.IsZero() {
		quotation.ValidUntil = time.Now().UTC().AddDate(0, 0, s.cfg.QuoteValidityDays)
	}
}

// recomputeTotals derives amounts from the lines so the stored totals can
// never drift from what the lines say.
func (s *quotationService) recomputeTotals(quotation *model.Quotation) {
	var subtotal float64
	for i := range quotation.Lines {
		line := &quotation.Lines[i]
		line.Amount = round2(line.Quantity * line.UnitPrice)
		subtotal += line.Amount
	}
	quotation.Subtotal = round2(subtotal)
	quotation.TaxAmount = round2(subtotal * quotation.TaxPercent / 100)
	quotation.Total = round2(quotation.Subtotal + quotation.TaxAmount)
}

func (s *quotationService) validate(quotation *model.Quotation) error {
	if err := s.validator.Validate(quotation); err != nil {
		s.cfg.Log.Warn("Quotation validation failed", "error", err)
		return apperrors.Validation("Quotation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *quotationService) markEnquiryQuoted(ctx context.Context, enquiry *model.Enquiry) {
	if enquiry.Status != model.EnquiryStatusNew && enquiry.Status != model.EnquiryStatusContacted {
		return
	}
	updates := &model.EnquiryUpdate{Status: model.EnquiryStatusQuoted}
	if err := s.enquirySvc.Update(ctx, enquiry.ID, updates); err != nil {
		s.cfg.Log.Warn("Failed to mark enquiry as quoted", "enquiry_id", enquiry.ID, "error", err)
	}
}

func (s *quotationService) publishEvent(ctx context.Context, quotation *model.Quotation) {
	if s.publisher == nil {
		return
	}

	builder := kafka.NewMessage().
		WithKey(quotation.ID).
		WithValue(quotation).
		WithEventType(kafka.EventQuotationIssued).
		WithSource("banquetdesk")

	if actor := middleware.ActorFromContext(ctx); actor != nil {
		builder.WithActorID(actor.ID.String())
	}

	if err := s.publisher.Publish(ctx, builder.Build()); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", kafka.EventQuotationIssued, "key", quotation.ID, "error", err)
	}
}

func validQuotationStatus(status string) bool {
	switch status {
	case model.QuotationStatusDraft, model.QuotationStatusSent,
		model.QuotationStatusAccepted, model.QuotationStatusRejected:
		return true
	}
	return false
}

func newQuoteNumber() string {
	return "Q-" + strings.ToUpper(uuid.NewString()[:8])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
