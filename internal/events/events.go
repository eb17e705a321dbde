package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lifecycle event types.
const (
	TypeCreated  = "entity.created"
	TypeUpdated  = "entity.updated"
	TypeDeleted  = "entity.deleted"
	TypeRestored = "entity.restored"
	TypePurged   = "entity.purged"
)

// LifecycleEvent records a committed change to one entity.
type LifecycleEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Kind is the entity kind token, e.g. "mob"
	Kind string `json:"kind"`

	// PublicID identifies the entity that changed
	PublicID uuid.UUID `json:"public_id"`

	// Payload carries type-specific details serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// OccurredAt is when the change was committed
	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *LifecycleEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewLifecycleEvent creates an event for the entity of kind with publicID.
// A nil payload leaves Payload empty.
func NewLifecycleEvent(eventType, kind string, publicID uuid.UUID, at time.Time, payload interface{}) (*LifecycleEvent, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = b
	}

	return &LifecycleEvent{
		ID:         uuid.New(),
		Type:       eventType,
		Kind:       kind,
		PublicID:   publicID,
		Payload:    payloadBytes,
		OccurredAt: at,
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *LifecycleEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *LifecycleEvent) error
}
