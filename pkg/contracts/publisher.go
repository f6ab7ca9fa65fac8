package contracts

import (
	"context"

	"banquetdesk/pkg/kafka"
)

// EventPublisher is satisfied by *kafka.Producer. Services treat event
// publication as best-effort and never fail a request over it.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}
