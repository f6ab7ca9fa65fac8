package main

import (
	bookingshandler "banquetdesk/internal/bookings/handler"
	bookingsrepo "banquetdesk/internal/bookings/repository"
	bookingsservice "banquetdesk/internal/bookings/service"
	bookingsvalidator "banquetdesk/internal/bookings/validator"
	cataloghandler "banquetdesk/internal/catalog/handler"
	catalogrepo "banquetdesk/internal/catalog/repository"
	catalogservice "banquetdesk/internal/catalog/service"
	enquirieshandler "banquetdesk/internal/enquiries/handler"
	enquiriesrepo "banquetdesk/internal/enquiries/repository"
	enquiriesservice "banquetdesk/internal/enquiries/service"
	enquiriesvalidator "banquetdesk/internal/enquiries/validator"
	quotationshandler "banquetdesk/internal/quotations/handler"
	quotationsrepo "banquetdesk/internal/quotations/repository"
	quotationsservice "banquetdesk/internal/quotations/service"
	quotationsvalidator "banquetdesk/internal/quotations/validator"
	reportshandler "banquetdesk/internal/reports/handler"
	reportsrepo "banquetdesk/internal/reports/repository"
	reportsservice "banquetdesk/internal/reports/service"
	"banquetdesk/pkg/app"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/contracts"
	"banquetdesk/pkg/kafka"
	kafkaconfig "banquetdesk/pkg/kafka/config"
	kafkamiddleware "banquetdesk/pkg/kafka/middleware"
	"banquetdesk/pkg/session"
)

const ServiceName = "banquetdesk"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting banquetdesk API")
	cfg.SetMongo()

	producer := initProducer(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.Notifier().Subscribe(session.SessionInvalid, func(e session.Event) {
		cfg.Log.Warn("Invalid session reported", "user_id", e.UserID, "detail", e.Detail)
	})
	serverApp.SetApp(initHandlers(cfg, producer)...)
	serverApp.Run()

	if producer != nil {
		if err := producer.Close(); err != nil {
			cfg.Log.Warn("Failed to close event producer", "error", err)
		}
	}
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Domain events disabled")
		return nil
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Domain events enabled", "topic", cfg.EventsTopic)
	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) []contracts.Handler {
	// A nil interface keeps event publishing fully disabled; a typed nil
	// pointer would slip past the publisher == nil guards.
	var publisher contracts.EventPublisher
	if producer != nil {
		publisher = producer
	}

	bookingValidator := bookingsvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepo.NewBookingLockRepository(cfg)
	bookingService := bookingsservice.NewBookingService(bookingRepo, lockRepo, bookingValidator, publisher, cfg)

	enquiryValidator := enquiriesvalidator.NewEnquiryValidator(cfg.Log)
	enquiryRepo := enquiriesrepo.NewMongoEnquiryRepository(cfg)
	enquiryService := enquiriesservice.NewEnquiryService(enquiryRepo, bookingService, enquiryValidator, publisher, cfg)

	venueRepo := catalogrepo.NewMongoVenueRepository(cfg)
	roomTypeRepo := catalogrepo.NewMongoRoomTypeRepository(cfg)
	menuPackageRepo := catalogrepo.NewMongoMenuPackageRepository(cfg)
	catalogService := catalogservice.NewCatalogService(venueRepo, roomTypeRepo, menuPackageRepo, cfg)

	quotationValidator := quotationsvalidator.NewQuotationValidator(cfg.Log)
	quotationRepo := quotationsrepo.NewMongoQuotationRepository(cfg)
	quotationService := quotationsservice.NewQuotationService(
		quotationRepo,
		enquiryService,
		catalogService,
		quotationValidator,
		publisher,
		cfg,
	)

	reportRepo := reportsrepo.NewMongoReportRepository(cfg)
	reportService := reportsservice.NewReportService(reportRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		enquirieshandler.NewEnquiryHandler(enquiryService, cfg.Log),
		cataloghandler.NewCatalogHandler(catalogService, cfg.Log),
		quotationshandler.NewQuotationHandler(quotationService, cfg.Log),
		reportshandler.NewReportHandler(reportService, cfg.Log),
	}
}
