package service

import (
	"context"
	"regexp"

	"banquetdesk/internal/reports/repository"
	"banquetdesk/pkg/config"
	apperrors "banquetdesk/pkg/errors"
	"banquetdesk/pkg/model"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BookingsReport is the grouped bookings summary returned to callers.
type BookingsReport struct {
	GroupBy string                        `json:"groupBy"`
	From    string                        `json:"from,omitempty"`
	To      string                        `json:"to,omitempty"`
	Rows    []repository.BookingAggregate `json:"rows"`
}

// FunnelStage is one step of the enquiry pipeline, in lifecycle order.
type FunnelStage struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type EnquiryFunnel struct {
	Stages         []FunnelStage `json:"stages"`
	Total          int64         `json:"total"`
	ConversionRate float64       `json:"conversionRate"`
}

type ReportService interface {
	BookingsReport(ctx context.Context, groupBy string, from string, to string) (*BookingsReport, error)
	EnquiryFunnel(ctx context.Context) (*EnquiryFunnel, error)
}

type reportService struct {
	repo repository.ReportRepository
	cfg  *config.Config
}

func NewReportService(repo repository.ReportRepository, cfg *config.Config) ReportService {
	return &reportService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *reportService) BookingsReport(ctx context.Context, groupBy string, from string, to string) (*BookingsReport, error) {
	if groupBy == "" {
		groupBy = repository.GroupByVenue
	}
	switch groupBy {
	case repository.GroupByVenue, repository.GroupBySalesperson, repository.GroupByMonth:
	default:
		return nil, apperrors.InvalidInput("groupBy must be one of: venue, salesperson, month")
	}

	if from != "" && !isoDateRegex.MatchString(from) {
		return nil, apperrors.InvalidInput("from must be an ISO date (YYYY-MM-DD)")
	}
	if to != "" && !isoDateRegex.MatchString(to) {
		return nil, apperrors.InvalidInput("to must be an ISO date (YYYY-MM-DD)")
	}
	if from != "" && to != "" && to < from {
		return nil, apperrors.InvalidInput("to must not be before from")
	}

	rows, err := s.repo.AggregateBookings(ctx, groupBy, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to build bookings report", "group_by", groupBy, "error", err)
		return nil, apperrors.Internal("Failed to build bookings report", err)
	}
	if rows == nil {
		rows = []repository.BookingAggregate{}
	}

	return &BookingsReport{
		GroupBy: groupBy,
		From:    from,
		To:      to,
		Rows:    rows,
	}, nil
}

func (s *reportService) EnquiryFunnel(ctx context.Context) (*EnquiryFunnel, error) {
	counts, err := s.repo.CountEnquiriesByStatus(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to build enquiry funnel", "error", err)
		return nil, apperrors.Internal("Failed to build enquiry funnel", err)
	}

	byStatus := make(map[string]int64, len(counts))
	var total int64
	for _, c := range counts {
		byStatus[c.Status] = c.Count
		total += c.Count
	}

	stageOrder := []string{
		model.EnquiryStatusNew,
		model.EnquiryStatusContacted,
		model.EnquiryStatusQuoted,
		model.EnquiryStatusConverted,
		model.EnquiryStatusLost,
	}
	stages := make([]FunnelStage, 0, len(stageOrder))
	for _, status := range stageOrder {
		stages = append(stages, FunnelStage{Status: status, Count: byStatus[status]})
	}

	funnel := &EnquiryFunnel{
		Stages: stages,
		Total:  total,
	}
	if total > 0 {
		funnel.ConversionRate = float64(byStatus[model.EnquiryStatusConverted]) / float64(total)
	}

	return funnel, nil
}
