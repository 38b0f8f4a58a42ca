package models

import "time"

// Domain event types published after successful inserts.
const (
	EventOrderPlaced    = "order_placed"
	EventProductCreated = "product_created"
)

// DomainEvent is the envelope published to the configured event backend.
type DomainEvent struct {
	EventType  string                 `json:"event_type"`
	EntityID   string                 `json:"entity_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}
