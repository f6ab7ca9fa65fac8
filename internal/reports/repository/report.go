package repository

import (
	"context"
	"fmt"
	"time"

	bookingsrepo "banquetdesk/internal/bookings/repository"
	enquiriesrepo "banquetdesk/internal/enquiries/repository"
	"banquetdesk/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingAggregate is one row of a grouped bookings report.
type BookingAggregate struct {
	Key       string `json:"key" bson:"_id"`
	Total     int64  `json:"total" bson:"total"`
	Enquiry   int64  `json:"enquiry" bson:"enquiry"`
	Tentative int64  `json:"tentative" bson:"tentative"`
	Confirmed int64  `json:"confirmed" bson:"confirmed"`
	Cancelled int64  `json:"cancelled" bson:"cancelled"`
	Guests    int64  `json:"guests" bson:"guests"`
}

// StatusCount is one enquiry funnel stage.
type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

type ReportRepository interface {
	AggregateBookings(ctx context.Context, groupBy string, from string, to string) ([]BookingAggregate, error)
	CountEnquiriesByStatus(ctx context.Context) ([]StatusCount, error)
}

type mongoReportRepository struct {
	cfg       *config.Config
	bookings  *mongo.Collection
	enquiries *mongo.Collection
}

func NewMongoReportRepository(cfg *config.Config) ReportRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReportRepository{
		cfg:       cfg,
		bookings:  db.Collection(bookingsrepo.CollectionName),
		enquiries: db.Collection(enquiriesrepo.CollectionName),
	}
}

func (r *mongoReportRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// AggregateBookings groups bookings by venue, salesperson or month. Dates are
// textual YYYY-MM-DD values, so range bounds compare lexicographically.
// Multi-session bookings report under their first session; legacy documents
// fall back to the flat hall and event_date fields.
func (r *mongoReportRepository) AggregateBookings(ctx context.Context, groupBy string, from string, to string) ([]BookingAggregate, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	addFields := bson.D{{Key: "$addFields", Value: bson.M{
		"report_venue": bson.M{"$ifNull": bson.A{
			bson.M{"$arrayElemAt": bson.A{"$sessions.venue", 0}},
			"$hall",
		}},
		"report_date": bson.M{"$ifNull": bson.A{
			bson.M{"$arrayElemAt": bson.A{"$sessions.session_date", 0}},
			"$event_date",
		}},
		"report_owner": bson.M{"$toString": bson.M{"$ifNull": bson.A{
			"$salesperson_id",
			bson.M{"$ifNull": bson.A{"$created_by", "$salesperson.id"}},
		}}},
	}}}

	match := bson.M{}
	if from != "" {
		match["report_date"] = bson.M{"$gte": from}
	}
	if to != "" {
		bounds, ok := match["report_date"].(bson.M)
		if !ok {
			bounds = bson.M{}
		}
		// The textual upper bound is exclusive of the next day, inclusive of
		// date values that carry a time suffix.
		bounds["$lt"] = to + "~"
		match["report_date"] = bounds
	}

	var groupKey any
	switch groupBy {
	case GroupByVenue:
		groupKey = "$report_venue"
	case GroupBySalesperson:
		groupKey = "$report_owner"
	case GroupByMonth:
		groupKey = bson.M{"$substrCP": bson.A{"$report_date", 0, 7}}
	default:
		return nil, fmt.Errorf("unsupported groupBy: %s", groupBy)
	}

	statusCount := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", status}}, 1, 0,
		}}}
	}

	pipeline := mongo.Pipeline{
		addFields,
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       groupKey,
			"total":     bson.M{"$sum": 1},
			"enquiry":   statusCount("enquiry"),
			"tentative": statusCount("tentative"),
			"confirmed": statusCount("confirmed"),
			"cancelled": statusCount("cancelled"),
			"guests":    bson.M{"$sum": bson.M{"$ifNull": bson.A{"$guest_count", 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []BookingAggregate
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking aggregates: %w", err)
	}

	return rows, nil
}

func (r *mongoReportRepository) CountEnquiriesByStatus(ctx context.Context) ([]StatusCount, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.enquiries.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []StatusCount
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode enquiry counts: %w", err)
	}

	return rows, nil
}

const (
	GroupByVenue       = "venue"
	GroupBySalesperson = "salesperson"
	GroupByMonth       = "month"
)
