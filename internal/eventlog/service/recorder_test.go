package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"banquetdesk/pkg/config"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/model"
)

type mockActivityRepository struct {
	recorded  []*model.ActivityRecord
	recordErr error
}

func (m *mockActivityRepository) Record(ctx context.Context, record *model.ActivityRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recorded = append(m.recorded, record)
	return nil
}

func (m *mockActivityRepository) FindRecent(ctx context.Context, eventType string, limit int) ([]*model.ActivityRecord, error) {
	return m.recorded, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestHandle_RecordsEventFields(t *testing.T) {
	repo := &mockActivityRepository{}
	recorder := NewRecorder(repo, testConfig(t))

	msg := kafka.NewMessage().
		WithKey("66d0a0a0a0a0a0a0a0a0a0a0").
		WithValue(map[string]string{"status": "confirmed"}).
		WithEventType(kafka.EventBookingUpdated).
		WithActorID("user-9").
		WithSource("banquetdesk").
		Build()

	if err := recorder.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.recorded))
	}
	record := repo.recorded[0]
	if record.EventType != kafka.EventBookingUpdated {
		t.Errorf("event type = %q, want %q", record.EventType, kafka.EventBookingUpdated)
	}
	if record.EntityID != "66d0a0a0a0a0a0a0a0a0a0a0" {
		t.Errorf("entity id = %q, want message key", record.EntityID)
	}
	if record.ActorID != "user-9" {
		t.Errorf("actor id = %q, want user-9", record.ActorID)
	}
	if record.EventID == "" {
		t.Error("expected event id from message headers")
	}
	if record.Payload == "" {
		t.Error("expected payload to carry the event body")
	}
}

func TestHandle_SkipsMessagesWithoutEventType(t *testing.T) {
	repo := &mockActivityRepository{}
	recorder := NewRecorder(repo, testConfig(t))

	msg := kafka.Message{
		Key:     "stray",
		Value:   []byte("{}"),
		Headers: map[string]string{},
	}

	if err := recorder.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle should commit unknown messages, got error: %v", err)
	}
	if len(repo.recorded) != 0 {
		t.Errorf("expected no records, got %d", len(repo.recorded))
	}
}

func TestHandle_PropagatesStorageErrors(t *testing.T) {
	repo := &mockActivityRepository{recordErr: errors.New("mongo down")}
	recorder := NewRecorder(repo, testConfig(t))

	msg := kafka.NewMessage().
		WithKey("66d0a0a0a0a0a0a0a0a0a0a0").
		WithValue(map[string]string{}).
		WithEventType(kafka.EventBookingCreated).
		Build()

	if err := recorder.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected storage error to propagate for retry")
	}
}
