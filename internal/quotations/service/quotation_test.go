package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"banquetdesk/internal/quotations/validator"
	"banquetdesk/pkg/config"
	mongotx "banquetdesk/pkg/db/mongo"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockQuotationRepository struct {
	created   []*model.Quotation
	createErr error

	findByIDFn func(id string) (*model.Quotation, error)
	updated    map[string]*model.Quotation
}

func (m *mockQuotationRepository) Create(ctx context.Context, q *model.Quotation) error {
	if m.createErr != nil {
		return m.createErr
	}
	if q.ID == "" {
		q.ID = "66d0a0a0a0a0a0a0a0a0a0a0"
	}
	m.created = append(m.created, q)
	return nil
}

func (m *mockQuotationRepository) FindByID(ctx context.Context, id string) (*model.Quotation, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockQuotationRepository) FindAll(ctx context.Context, status string, enquiryID string, limit int, offset int64) ([]*model.Quotation, error) {
	return m.created, nil
}

func (m *mockQuotationRepository) Update(ctx context.Context, id string, q *model.Quotation) (*mongo.UpdateResult, error) {
	if m.updated == nil {
		m.updated = make(map[string]*model.Quotation)
	}
	m.updated[id] = q
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockQuotationRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockQuotationRepository) Count(ctx context.Context, status string, enquiryID string) (int64, error) {
	return int64(len(m.created)), nil
}

func (m *mockQuotationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockEnquiryService struct {
	enquiry   *model.Enquiry
	updates   []*model.EnquiryUpdate
	updateErr error
}

func (m *mockEnquiryService) Create(ctx context.Context, e *model.Enquiry) error { return nil }

func (m *mockEnquiryService) GetByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if m.enquiry == nil {
		return nil, apperrors.NotFoundWithID("Enquiry", id)
	}
	return m.enquiry, nil
}

func (m *mockEnquiryService) GetAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, int64, error) {
	return nil, 0, nil
}

func (m *mockEnquiryService) Update(ctx context.Context, id string, updates *model.EnquiryUpdate) error {
	m.updates = append(m.updates, updates)
	return m.updateErr
}

func (m *mockEnquiryService) Delete(ctx context.Context, id string) error { return nil }

func (m *mockEnquiryService) Convert(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

type mockCatalogService struct {
	venue    *model.Venue
	roomType *model.RoomType
	pkg      *model.MenuPackage
}

func (m *mockCatalogService) CreateVenue(ctx context.Context, v *model.Venue) error { return nil }

func (m *mockCatalogService) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	if m.venue == nil {
		return nil, apperrors.NotFoundWithID("Venue", id)
	}
	return m.venue, nil
}

func (m *mockCatalogService) ListVenues(ctx context.Context, activeOnly bool) ([]*model.Venue, error) {
	return nil, nil
}

func (m *mockCatalogService) UpdateVenue(ctx context.Context, id string, v *model.Venue) error {
	return nil
}

func (m *mockCatalogService) DeleteVenue(ctx context.Context, id string) error { return nil }

func (m *mockCatalogService) CreateRoomType(ctx context.Context, rt *model.RoomType) error {
	return nil
}

func (m *mockCatalogService) GetRoomType(ctx context.Context, id string) (*model.RoomType, error) {
	if m.roomType == nil {
		return nil, apperrors.NotFoundWithID("Room type", id)
	}
	return m.roomType, nil
}

func (m *mockCatalogService) ListRoomTypes(ctx context.Context, activeOnly bool) ([]*model.RoomType, error) {
	return nil, nil
}

func (m *mockCatalogService) UpdateRoomType(ctx context.Context, id string, rt *model.RoomType) error {
	return nil
}

func (m *mockCatalogService) DeleteRoomType(ctx context.Context, id string) error { return nil }

func (m *mockCatalogService) CreateMenuPackage(ctx context.Context, p *model.MenuPackage) error {
	return nil
}

func (m *mockCatalogService) GetMenuPackage(ctx context.Context, id string) (*model.MenuPackage, error) {
	if m.pkg == nil {
		return nil, apperrors.NotFoundWithID("Menu package", id)
	}
	return m.pkg, nil
}

func (m *mockCatalogService) ListMenuPackages(ctx context.Context, activeOnly bool) ([]*model.MenuPackage, error) {
	return nil, nil
}

func (m *mockCatalogService) UpdateMenuPackage(ctx context.Context, id string, p *model.MenuPackage) error {
	return nil
}

func (m *mockCatalogService) DeleteMenuPackage(ctx context.Context, id string) error { return nil }

type mockPublisher struct {
	messages []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:               log,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		QuoteValidityDays: 14,
		DefaultTaxPercent: 18.0,
	}
}

func newTestService(
	repo *mockQuotationRepository,
	enquiries *mockEnquiryService,
	catalog *mockCatalogService,
	pub *mockPublisher,
	cfg *config.Config,
) *quotationService {
	svc := &quotationService{
		repo:       repo,
		enquirySvc: enquiries,
		catalogSvc: catalog,
		validator:  validator.NewQuotationValidator(cfg.Log),
		cfg:        cfg,
	}
	// Assign only a non-nil mock: a nil *mockPublisher stored in the
	// interface field would slip past the service's publisher == nil check.
	if pub != nil {
		svc.publisher = pub
	}
	return svc
}

func testEnquiry() *model.Enquiry {
	return &model.Enquiry{
		ID:             "66d0b0b0b0b0b0b0b0b0b0b0",
		ClientName:     "Asha Mehta",
		EventType:      "Wedding",
		ExpectedGuests: 150,
		Status:         model.EnquiryStatusNew,
		SalespersonID:  "sp-7",
	}
}

func TestGenerate_PricesVenueMenuAndRooms(t *testing.T) {
	repo := &mockQuotationRepository{}
	enquiries := &mockEnquiryService{enquiry: testEnquiry()}
	catalog := &mockCatalogService{
		venue:    &model.Venue{Name: "The Lawns", PricePerDay: 50000},
		pkg:      &model.MenuPackage{Name: "Royal Veg", PricePerPlate: 1200},
		roomType: &model.RoomType{Name: "Deluxe", PricePerNight: 4000},
	}
	pub := &mockPublisher{}
	cfg := testConfig(t)
	svc := newTestService(repo, enquiries, catalog, pub, cfg)

	req := &validator.GenerateRequest{
		EnquiryID:     "66d0b0b0b0b0b0b0b0b0b0b0",
		VenueID:       "66d0c0c0c0c0c0c0c0c0c0c0",
		Days:          2,
		MenuPackageID: "66d0c0c0c0c0c0c0c0c0c0c1",
		Guests:        150,
		RoomTypeID:    "66d0c0c0c0c0c0c0c0c0c0c2",
		Rooms:         10,
		Nights:        2,
	}

	quotation, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(quotation.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(quotation.Lines))
	}

	// Venue 2 x 50000, menu 150 x 1200, rooms 20 x 4000.
	wantSubtotal := 100000.0 + 180000.0 + 80000.0
	if quotation.Subtotal != wantSubtotal {
		t.Errorf("subtotal = %g, want %g", quotation.Subtotal, wantSubtotal)
	}
	wantTax := wantSubtotal * 0.18
	if quotation.TaxAmount != wantTax {
		t.Errorf("tax amount = %g, want %g", quotation.TaxAmount, wantTax)
	}
	if quotation.Total != wantSubtotal+wantTax {
		t.Errorf("total = %g, want %g", quotation.Total, wantSubtotal+wantTax)
	}

	if quotation.Status != model.QuotationStatusDraft {
		t.Errorf("status = %q, want draft", quotation.Status)
	}
	if quotation.ClientName != "Asha Mehta" {
		t.Errorf("client name = %q, want enquiry's client", quotation.ClientName)
	}
	if quotation.SalespersonID != "sp-7" {
		t.Errorf("salesperson id = %q, want sp-7", quotation.SalespersonID)
	}
	if !strings.HasPrefix(quotation.QuoteNumber, "Q-") {
		t.Errorf("quote number = %q, want Q- prefix", quotation.QuoteNumber)
	}

	wantValid := time.Now().UTC().AddDate(0, 0, cfg.QuoteValidityDays)
	if diff := quotation.ValidUntil.Sub(wantValid); diff < -time.Minute || diff > time.Minute {
		t.Errorf("valid until = %v, want about %v", quotation.ValidUntil, wantValid)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected quotation stored, got %d", len(repo.created))
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.messages))
	}
	if got := pub.messages[0].Headers["event-type"]; got != kafka.EventQuotationIssued {
		t.Errorf("event type = %q, want %q", got, kafka.EventQuotationIssued)
	}
}

func TestGenerate_MarksEnquiryQuoted(t *testing.T) {
	repo := &mockQuotationRepository{}
	enquiries := &mockEnquiryService{enquiry: testEnquiry()}
	catalog := &mockCatalogService{venue: &model.Venue{Name: "The Lawns", PricePerDay: 50000}}
	cfg := testConfig(t)
	svc := newTestService(repo, enquiries, catalog, nil, cfg)

	_, err := svc.Generate(context.Background(), &validator.GenerateRequest{
		EnquiryID: "66d0b0b0b0b0b0b0b0b0b0b0",
		VenueID:   "66d0c0c0c0c0c0c0c0c0c0c0",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(enquiries.updates) != 1 {
		t.Fatalf("expected 1 enquiry update, got %d", len(enquiries.updates))
	}
	if enquiries.updates[0].Status != model.EnquiryStatusQuoted {
		t.Errorf("enquiry status update = %q, want quoted", enquiries.updates[0].Status)
	}
}

func TestGenerate_ConvertedEnquiryStaysConverted(t *testing.T) {
	enquiry := testEnquiry()
	enquiry.Status = model.EnquiryStatusConverted
	repo := &mockQuotationRepository{}
	enquiries := &mockEnquiryService{enquiry: enquiry}
	catalog := &mockCatalogService{venue: &model.Venue{Name: "The Lawns", PricePerDay: 50000}}
	svc := newTestService(repo, enquiries, catalog, nil, testConfig(t))

	_, err := svc.Generate(context.Background(), &validator.GenerateRequest{
		EnquiryID: "66d0b0b0b0b0b0b0b0b0b0b0",
		VenueID:   "66d0c0c0c0c0c0c0c0c0c0c0",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(enquiries.updates) != 0 {
		t.Errorf("converted enquiry should not be re-touched, got %d updates", len(enquiries.updates))
	}
}

func TestGenerate_GuestsFallBackToEnquiry(t *testing.T) {
	repo := &mockQuotationRepository{}
	enquiries := &mockEnquiryService{enquiry: testEnquiry()}
	catalog := &mockCatalogService{pkg: &model.MenuPackage{Name: "Royal Veg", PricePerPlate: 1000}}
	svc := newTestService(repo, enquiries, catalog, nil, testConfig(t))

	quotation, err := svc.Generate(context.Background(), &validator.GenerateRequest{
		EnquiryID:     "66d0b0b0b0b0b0b0b0b0b0b0",
		MenuPackageID: "66d0c0c0c0c0c0c0c0c0c0c1",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// 150 expected guests from the enquiry at 1000 per plate.
	if quotation.Subtotal != 150000 {
		t.Errorf("subtotal = %g, want 150000", quotation.Subtotal)
	}
}

func TestGenerate_CustomTaxPercentIsClamped(t *testing.T) {
	repo := &mockQuotationRepository{}
	enquiries := &mockEnquiryService{enquiry: testEnquiry()}
	catalog := &mockCatalogService{venue: &model.Venue{Name: "The Lawns", PricePerDay: 1000}}
	svc := newTestService(repo, enquiries, catalog, nil, testConfig(t))

	tax := 5.0
	quotation, err := svc.Generate(context.Background(), &validator.GenerateRequest{
		EnquiryID:  "66d0b0b0b0b0b0b0b0b0b0b0",
		VenueID:    "66d0c0c0c0c0c0c0c0c0c0c0",
		TaxPercent: &tax,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if quotation.TaxPercent != 5 {
		t.Errorf("tax percent = %g, want 5", quotation.TaxPercent)
	}
	if quotation.TaxAmount != 50 {
		t.Errorf("tax amount = %g, want 50", quotation.TaxAmount)
	}
}

func TestGenerate_RequiresAtLeastOneLine(t *testing.T) {
	svc := newTestService(&mockQuotationRepository{}, &mockEnquiryService{enquiry: testEnquiry()}, &mockCatalogService{}, nil, testConfig(t))

	_, err := svc.Generate(context.Background(), &validator.GenerateRequest{
		EnquiryID: "66d0b0b0b0b0b0b0b0b0b0b0",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 422 {
		t.Errorf("expected 422 validation error, got %d", got)
	}
}

func TestCreate_RecomputesDriftedTotals(t *testing.T) {
	repo := &mockQuotationRepository{}
	svc := newTestService(repo, &mockEnquiryService{}, &mockCatalogService{}, nil, testConfig(t))

	quotation := &model.Quotation{
		EnquiryID:  "66d0b0b0b0b0b0b0b0b0b0b0",
		ClientName: "Asha Mehta",
		Lines: []model.QuotationLine{
			{Description: "Venue: The Lawns", Quantity: 1, UnitPrice: 50000, Amount: 99999},
		},
		Subtotal: 1,
		Total:    2,
	}

	if err := svc.Create(context.Background(), quotation); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if quotation.Lines[0].Amount != 50000 {
		t.Errorf("line amount = %g, want 50000", quotation.Lines[0].Amount)
	}
	if quotation.Subtotal != 50000 {
		t.Errorf("subtotal = %g, want 50000", quotation.Subtotal)
	}
	if quotation.TaxAmount != 9000 {
		t.Errorf("tax amount = %g, want 9000", quotation.TaxAmount)
	}
	if quotation.Total != 59000 {
		t.Errorf("total = %g, want 59000", quotation.Total)
	}
	if quotation.QuoteNumber == "" {
		t.Error("expected quote number to be assigned")
	}
}

func TestUpdateStatus_TerminalStatusIsFrozen(t *testing.T) {
	repo := &mockQuotationRepository{
		findByIDFn: func(id string) (*model.Quotation, error) {
			return &model.Quotation{ID: id, Status: model.QuotationStatusAccepted}, nil
		},
	}
	svc := newTestService(repo, &mockEnquiryService{}, &mockCatalogService{}, nil, testConfig(t))

	err := svc.UpdateStatus(context.Background(), "66d0a0a0a0a0a0a0a0a0a0a0", model.QuotationStatusSent)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 409 {
		t.Errorf("expected 409 conflict, got %d", got)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&mockQuotationRepository{}, &mockEnquiryService{}, &mockCatalogService{}, nil, testConfig(t))

	err := svc.UpdateStatus(context.Background(), "66d0a0a0a0a0a0a0a0a0a0a0", "approved")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 400 {
		t.Errorf("expected 400 invalid input, got %d", got)
	}
}
