package model

import "time"

// ActivityRecord is one audit-trail entry, written by the eventlog consumer
// for every domain event published on the bus.
type ActivityRecord struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	EventID    string    `json:"eventId" bson:"event_id" validate:"required"`
	EventType  string    `json:"eventType" bson:"event_type" validate:"required"`
	EntityID   string    `json:"entityId,omitempty" bson:"entity_id,omitempty"`
	ActorID    string    `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Payload    string    `json:"payload,omitempty" bson:"payload,omitempty"`
	RecordedAt time.Time `json:"recordedAt" bson:"recorded_at"`
}
