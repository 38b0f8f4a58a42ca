// Package events publishes domain events after successful inserts.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"
)

// Publisher delivers domain events to an external backend.
type Publisher interface {
	Publish(ctx context.Context, event models.DomainEvent) error
	Close() error
}

// Backend names accepted by EVENTS_BACKEND.
const (
	BackendNone  = "none"
	BackendSNS   = "sns"
	BackendSQS   = "sqs"
	BackendKafka = "kafka"
)

// NewEvent builds an event envelope stamped with the current UTC time.
func NewEvent(eventType, entityID string, payload map[string]interface{}) models.DomainEvent {
	return models.DomainEvent{
		EventType:  eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

func encode(event models.DomainEvent) ([]byte, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}
	return b, nil
}

func attributes(event models.DomainEvent) map[string]string {
	return map[string]string{"event_type": event.EventType}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.DomainEvent) error { return nil }
func (NoopPublisher) Close() error                                      { return nil }
