package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which lifecycle notification a QueueEvent carries.
type Kind string

const (
	KindItemStarted   Kind = "item_started"
	KindItemSucceeded Kind = "item_succeeded"
	KindItemFailed    Kind = "item_failed"
	KindItemSettled   Kind = "item_settled"
	KindQueueDrained  Kind = "queue_drained"
)

// QueueEvent is a single lifecycle notification from a named queue.
type QueueEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Kind is the lifecycle notification this event represents
	Kind Kind `json:"kind"`

	// Queue names the queue that produced the event
	Queue string `json:"queue"`

	// ItemID identifies the item for item events; empty for queue_drained
	ItemID string `json:"item_id,omitempty"`

	// Error is the failure message for item_failed and failed item_settled events
	Error string `json:"error,omitempty"`

	// Payload holds kind-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *QueueEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewQueueEvent creates a QueueEvent of the given kind. A nil payload leaves
// Payload empty.
func NewQueueEvent(kind Kind, queueName, itemID string, payload any) (*QueueEvent, error) {
	event := &QueueEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Queue:     queueName,
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		event.Payload = payloadBytes
	}

	return event, nil
}

// EventHandler defines an interface for components that consume queue events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *QueueEvent) error
}

// EventEmitter defines an interface for components that publish queue events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *QueueEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *QueueEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *QueueEvent) error {
	return f(ctx, event)
}
