package kafka

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kafka_config "banquetdesk/pkg/kafka/config"
	"banquetdesk/pkg/logger"
)

func testConsumerConfig() *kafka_config.Config {
	return &kafka_config.Config{
		Brokers:          []string{"localhost:9092"},
		ConsumerMinBytes: 1,
		ConsumerMaxBytes: 10e6,
	}
}

func noopHandler(ctx context.Context, msg Message) error { return nil }

func TestNewConsumer_ValidatesArguments(t *testing.T) {
	log := logger.New(logger.Config{Output: &bytes.Buffer{}})

	tests := []struct {
		name    string
		cfg     *kafka_config.Config
		topic   string
		groupID string
		handler MessageHandler
		log     *logger.Logger
	}{
		{"nil config", nil, "events", "grp", noopHandler, log},
		{"nil logger", testConsumerConfig(), "events", "grp", noopHandler, nil},
		{"empty topic", testConsumerConfig(), "", "grp", noopHandler, log},
		{"empty group", testConsumerConfig(), "events", "", noopHandler, log},
		{"nil handler", testConsumerConfig(), "events", "grp", nil, log},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConsumer(tt.cfg, tt.topic, tt.groupID, "", tt.handler, tt.log); err == nil {
				t.Error("expected a constructor error")
			}
		})
	}
}

func TestNewConsumer_RoutesClientErrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Format: logger.TEXT, Output: &buf})

	c, err := NewConsumer(testConsumerConfig(), "events", "grp", "events.dlq", noopHandler, log)
	if err != nil {
		t.Fatalf("NewConsumer: %v", err)
	}

	c.reader.Config().ErrorLogger.Printf("fetch failed: %s", "broker down")
	if !strings.Contains(buf.String(), "fetch failed: broker down") {
		t.Errorf("reader errors must reach the structured logger, got %q", buf.String())
	}

	buf.Reset()
	c.dlqWriter.ErrorLogger.Printf("dlq write failed: %s", "timeout")
	if !strings.Contains(buf.String(), "dlq write failed: timeout") {
		t.Errorf("DLQ writer errors must reach the structured logger, got %q", buf.String())
	}
}
