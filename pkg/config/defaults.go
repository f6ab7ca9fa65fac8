package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "banquetdesk"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Implicit bounds used when a legacy booking carries no recorded
	// event times: it occupies the entire day.
	DefaultDayStart = "00:00"
	DefaultDayEnd   = "23:59"

	DefaultLockTTL = 10 * time.Second

	DefaultQuoteValidityDays = 14
	DefaultTaxPercent        = 18.0

	DefaultEventsEnabled     = false
	DefaultEventsTopic       = "banquetdesk.events"
	DefaultEventsDLQTopic    = "banquetdesk.events.dlq"
	DefaultEventsConsumerGrp = "banquetdesk-eventlog"

	DefaultPaginationLimit = 100
)
