package service

import (
	"context"

	"banquetdesk/internal/eventlog/repository"
	"banquetdesk/pkg/config"
	"banquetdesk/pkg/kafka"
	"banquetdesk/pkg/model"
)

// Recorder turns consumed domain events into audit-trail rows. It is the
// message handler behind the eventlog consumer group.
type Recorder struct {
	repo repository.ActivityRepository
	cfg  *config.Config
}

func NewRecorder(repo repository.ActivityRepository, cfg *config.Config) *Recorder {
	return &Recorder{
		repo: repo,
		cfg:  cfg,
	}
}

// Handle records one event. Errors propagate to the consumer, which retries
// and eventually parks the message on the DLQ.
func (r *Recorder) Handle(ctx context.Context, msg kafka.Message) error {
	record := &model.ActivityRecord{
		EventID:   msg.GetEventID(),
		EventType: msg.GetEventType(),
		EntityID:  msg.Key,
		ActorID:   msg.GetActorID(),
		Payload:   string(msg.Value),
	}

	if record.EventType == "" {
		// Messages without an event type are not ours to interpret; log and
		// commit rather than poisoning the DLQ.
		r.cfg.Log.Warn("Skipping message without event type",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
		return nil
	}

	if err := r.repo.Record(ctx, record); err != nil {
		r.cfg.Log.Error("Failed to record activity",
			"event_id", record.EventID,
			"event_type", record.EventType,
			"error", err,
		)
		return err
	}

	r.cfg.Log.Debug("Activity recorded",
		"event_id", record.EventID,
		"event_type", record.EventType,
		"entity_id", record.EntityID,
	)
	return nil
}
