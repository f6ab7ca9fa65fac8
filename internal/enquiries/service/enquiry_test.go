package service

import (
	"context"
	"testing"
	"time"

	bookingsrepo "banquetdesk/internal/bookings/repository"
	"banquetdesk/internal/conflict"
	enquirieserrors "banquetdesk/internal/enquiries/errors"
	"banquetdesk/internal/enquiries/validator"
	"banquetdesk/pkg/config"
	mongotx "banquetdesk/pkg/db/mongo"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockEnquiryRepository struct {
	createFunc   func(ctx context.Context, enquiry *model.Enquiry) error
	findByIDFunc func(ctx context.Context, id string) (*model.Enquiry, error)
	findAllFunc  func(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, error)
	updateFunc   func(ctx context.Context, id string, enquiry *model.Enquiry) (*mongo.UpdateResult, error)
	deleteFunc   func(ctx context.Context, id string) error
	countFunc    func(ctx context.Context, status string) (int64, error)
}

func (m *mockEnquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, enquiry)
	}
	enquiry.ID = "000000000000000000000010"
	return nil
}

func (m *mockEnquiryRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, enquirieserrors.ErrNotFound
}

func (m *mockEnquiryRepository) FindAll(ctx context.Context, status string, limit int, offset int64) ([]*model.Enquiry, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, status, limit, offset)
	}
	return []*model.Enquiry{}, nil
}

func (m *mockEnquiryRepository) Update(ctx context.Context, id string, enquiry *model.Enquiry) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, enquiry)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockEnquiryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockEnquiryRepository) Count(ctx context.Context, status string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockEnquiryRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockBookingService struct {
	createFunc func(ctx context.Context, booking *model.Booking) error
	created    []*model.Booking
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "000000000000000000000020"
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	return nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingService) Search(ctx context.Context, filter bookingsrepo.SearchFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingService) CheckConflicts(ctx context.Context, candidate conflict.Candidate) (conflict.Result, error) {
	return conflict.Result{}, nil
}

type mockPublisher struct {
	messages []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func testEnquiry() *model.Enquiry {
	return &model.Enquiry{
		ID:             "000000000000000000000011",
		ClientName:     "Kapoor Family",
		EventType:      "Anniversary Dinner",
		ExpectedGuests: 120,
		PreferredVenue: "Crystal Hall",
		EventDate:      "2025-08-10",
		Status:         model.EnquiryStatusContacted,
		SalespersonID:  model.Identifier("17"),
	}
}

func TestConvert_CreatesTentativeBooking(t *testing.T) {
	cfg := testConfig(t)
	enquiry := testEnquiry()

	var statusUpdate *model.Enquiry
	repo := &mockEnquiryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Enquiry, error) {
			return enquiry, nil
		},
		updateFunc: func(ctx context.Context, id string, e *model.Enquiry) (*mongo.UpdateResult, error) {
			statusUpdate = e
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	bookingSvc := &mockBookingService{}
	pub := &mockPublisher{}
	svc := &enquiryService{
		repo:       repo,
		bookingSvc: bookingSvc,
		validator:  validator.NewEnquiryValidator(cfg.Log),
		publisher:  pub,
		cfg:        cfg,
	}

	booking, err := svc.Convert(context.Background(), enquiry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != model.BookingStatusTentative {
		t.Errorf("expected tentative status, got %s", booking.Status)
	}
	if booking.ClientName != "Kapoor Family" {
		t.Errorf("client name not carried over: %q", booking.ClientName)
	}
	if booking.Hall != "Crystal Hall" {
		t.Errorf("preferred venue not carried over: %q", booking.Hall)
	}
	if booking.SalespersonID.String() != "17" {
		t.Errorf("ownership not carried over: %q", booking.SalespersonID)
	}
	if statusUpdate == nil || statusUpdate.Status != model.EnquiryStatusConverted {
		t.Error("enquiry was not frozen in converted status")
	}
	if len(pub.messages) != 1 || pub.messages[0].GetEventType() != kafka.EventEnquiryConverted {
		t.Error("expected enquiry.converted event")
	}
}

func TestConvert_AlreadyConverted(t *testing.T) {
	cfg := testConfig(t)
	enquiry := testEnquiry()
	enquiry.Status = model.EnquiryStatusConverted

	repo := &mockEnquiryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Enquiry, error) {
			return enquiry, nil
		},
	}
	svc := &enquiryService{
		repo:       repo,
		bookingSvc: &mockBookingService{},
		validator:  validator.NewEnquiryValidator(cfg.Log),
		cfg:        cfg,
	}

	_, err := svc.Convert(context.Background(), enquiry.ID)
	if err == nil {
		t.Fatal("expected conflict for already converted enquiry")
	}
	if apperrors.AsAppError(err).StatusCode() != 409 {
		t.Errorf("expected 409, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestConvert_VenueConflictPropagates(t *testing.T) {
	cfg := testConfig(t)
	enquiry := testEnquiry()

	repo := &mockEnquiryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Enquiry, error) {
			return enquiry, nil
		},
		updateFunc: func(ctx context.Context, id string, e *model.Enquiry) (*mongo.UpdateResult, error) {
			t.Fatal("enquiry must not be marked converted when booking creation fails")
			return nil, nil
		},
	}
	bookingSvc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.Conflict("venue already occupied")
		},
	}
	svc := &enquiryService{
		repo:       repo,
		bookingSvc: bookingSvc,
		validator:  validator.NewEnquiryValidator(cfg.Log),
		cfg:        cfg,
	}

	_, err := svc.Convert(context.Background(), enquiry.ID)
	if err == nil {
		t.Fatal("expected conflict to propagate")
	}
	if apperrors.AsAppError(err).StatusCode() != 409 {
		t.Errorf("expected 409, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestUpdate_ConvertedEnquiryIsFrozen(t *testing.T) {
	cfg := testConfig(t)
	enquiry := testEnquiry()
	enquiry.Status = model.EnquiryStatusConverted

	repo := &mockEnquiryRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Enquiry, error) {
			return enquiry, nil
		},
	}
	svc := &enquiryService{
		repo:      repo,
		validator: validator.NewEnquiryValidator(cfg.Log),
		cfg:       cfg,
	}

	err := svc.Update(context.Background(), enquiry.ID, &model.EnquiryUpdate{Status: model.EnquiryStatusLost})
	if err == nil {
		t.Fatal("expected conflict editing a converted enquiry")
	}
	if apperrors.AsAppError(err).StatusCode() != 409 {
		t.Errorf("expected 409, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestCreate_DefaultsStatusToNew(t *testing.T) {
	cfg := testConfig(t)
	repo := &mockEnquiryRepository{}
	svc := &enquiryService{
		repo:      repo,
		validator: validator.NewEnquiryValidator(cfg.Log),
		cfg:       cfg,
	}

	enquiry := testEnquiry()
	enquiry.ID = ""
	enquiry.Status = ""

	if err := svc.Create(context.Background(), enquiry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enquiry.Status != model.EnquiryStatusNew {
		t.Errorf("expected default status new, got %s", enquiry.Status)
	}
}
