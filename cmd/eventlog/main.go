package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"banquetdesk/internal/eventlog/repository"
	"banquetdesk/internal/eventlog/service"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/kafka"
	kafkaconfig "banquetdesk/pkg/kafka/config"
	kafkamiddleware "banquetdesk/pkg/kafka/middleware"
)

const ServiceName = "eventlog"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting eventlog consumer")
	cfg.SetMongo()

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	activityRepo := repository.NewMongoActivityRepository(cfg)
	recorder := service.NewRecorder(activityRepo, cfg)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.EventsTopic,
		cfg.EventsConsumerGroup,
		cfg.EventsDLQTopic,
		recorder.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming domain events",
		"topic", cfg.EventsTopic,
		"group", cfg.EventsConsumerGroup,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Warn("Failed to close consumer", "error", err)
	}

	cfg.Client.GracefulShutdown()
	cfg.Log.Info("Eventlog consumer stopped")
}
