package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDayStart = "DAY_START"
	EnvDayEnd   = "DAY_END"

	EnvLockTTL = "BOOKING_LOCK_TTL"

	EnvQuoteValidityDays  = "QUOTE_VALIDITY_DAYS"
	EnvDefaultTaxPercent  = "DEFAULT_TAX_PERCENT"
	EnvEventsEnabled      = "EVENTS_ENABLED"
	EnvEventsTopic        = "EVENTS_TOPIC"
	EnvEventsDLQTopic     = "EVENTS_DLQ_TOPIC"
	EnvEventsConsumerGrp  = "EVENTS_CONSUMER_GROUP"
)
