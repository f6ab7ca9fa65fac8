package service

import (
	"context"
	"testing"
	"time"

	"banquetdesk/internal/reports/repository"
	"banquetdesk/pkg/config"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/logger"
)

type mockReportRepository struct {
	aggregateFn func(groupBy, from, to string) ([]repository.BookingAggregate, error)
	countFn     func() ([]repository.StatusCount, error)

	gotGroupBy string
	gotFrom    string
	gotTo      string
}

func (m *mockReportRepository) AggregateBookings(ctx context.Context, groupBy string, from string, to string) ([]repository.BookingAggregate, error) {
	m.gotGroupBy = groupBy
	m.gotFrom = from
	m.gotTo = to
	if m.aggregateFn != nil {
		return m.aggregateFn(groupBy, from, to)
	}
	return nil, nil
}

func (m *mockReportRepository) CountEnquiriesByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return nil, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
}

func TestBookingsReport_DefaultsToVenueGrouping(t *testing.T) {
	repo := &mockReportRepository{
		aggregateFn: func(groupBy, from, to string) ([]repository.BookingAggregate, error) {
			return []repository.BookingAggregate{
				{Key: "The Lawns", Total: 4, Confirmed: 2, Cancelled: 1, Guests: 600},
			}, nil
		},
	}
	svc := NewReportService(repo, testConfig(t))

	report, err := svc.BookingsReport(context.Background(), "", "2025-01-01", "2025-12-31")
	if err != nil {
		t.Fatalf("BookingsReport returned error: %v", err)
	}

	if repo.gotGroupBy != repository.GroupByVenue {
		t.Errorf("groupBy passed to repository = %q, want venue", repo.gotGroupBy)
	}
	if report.GroupBy != repository.GroupByVenue {
		t.Errorf("report groupBy = %q, want venue", report.GroupBy)
	}
	if len(report.Rows) != 1 || report.Rows[0].Key != "The Lawns" {
		t.Errorf("unexpected rows: %+v", report.Rows)
	}
}

func TestBookingsReport_RejectsUnknownGrouping(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, testConfig(t))

	_, err := svc.BookingsReport(context.Background(), "weekday", "", "")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 400 {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestBookingsReport_RejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, testConfig(t))

	_, err := svc.BookingsReport(context.Background(), "venue", "2025-06-01", "2025-01-01")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 400 {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestBookingsReport_RejectsMalformedDate(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, testConfig(t))

	_, err := svc.BookingsReport(context.Background(), "month", "01-06-2025", "")
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if got := apperrors.AsAppError(err).StatusCode(); got != 400 {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestEnquiryFunnel_OrdersStagesAndComputesConversion(t *testing.T) {
	repo := &mockReportRepository{
		countFn: func() ([]repository.StatusCount, error) {
			return []repository.StatusCount{
				{Status: "lost", Count: 2},
				{Status: "converted", Count: 3},
				{Status: "new", Count: 5},
			}, nil
		},
	}
	svc := NewReportService(repo, testConfig(t))

	funnel, err := svc.EnquiryFunnel(context.Background())
	if err != nil {
		t.Fatalf("EnquiryFunnel returned error: %v", err)
	}

	wantOrder := []string{"new", "contacted", "quoted", "converted", "lost"}
	if len(funnel.Stages) != len(wantOrder) {
		t.Fatalf("expected %d stages, got %d", len(wantOrder), len(funnel.Stages))
	}
	for i, status := range wantOrder {
		if funnel.Stages[i].Status != status {
			t.Errorf("stage %d = %q, want %q", i, funnel.Stages[i].Status, status)
		}
	}

	if funnel.Total != 10 {
		t.Errorf("total = %d, want 10", funnel.Total)
	}
	if funnel.ConversionRate != 0.3 {
		t.Errorf("conversion rate = %g, want 0.3", funnel.ConversionRate)
	}
	if funnel.Stages[1].Count != 0 {
		t.Errorf("contacted count = %d, want 0", funnel.Stages[1].Count)
	}
}

func TestEnquiryFunnel_EmptyPipeline(t *testing.T) {
	svc := NewReportService(&mockReportRepository{}, testConfig(t))

	funnel, err := svc.EnquiryFunnel(context.Background())
	if err != nil {
		t.Fatalf("EnquiryFunnel returned error: %v", err)
	}
	if funnel.Total != 0 || funnel.ConversionRate != 0 {
		t.Errorf("expected empty funnel, got total=%d rate=%g", funnel.Total, funnel.ConversionRate)
	}
}
