// Package events announces workflow changes to other parts of the system.
package events

import (
	"context"
	"time"

	"gecapi/internal/model"
)

// Type names a workflow event.
type Type string

const (
	CourrierCreated       Type = "courrier.created"
	CourrierTransmitted   Type = "courrier.transmitted"
	CourrierActionApplied Type = "courrier.action_applied"
	CourrierNodeRead      Type = "courrier.node_read"
)

// Metadata keys set on every published message.
const (
	MetadataEventType  = "event_type"
	MetadataCourrierID = "courrier_id"
)

// Event is the payload published after a courrier has been persisted.
type Event struct {
	Type       Type             `json:"type"`
	CourrierID string           `json:"courrierId"`
	Number     string           `json:"number"`
	Status     string           `json:"status"`
	Version    int              `json:"version"`
	NodeID     string           `json:"nodeId,omitempty"`
	ActionID   string           `json:"actionId,omitempty"`
	ActionType model.ActionType `json:"actionType,omitempty"`
	NewNodeIDs []string         `json:"newNodeIds,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewEvent fills the courrier-level fields of an event from c.
func NewEvent(t Type, c *model.Courrier) Event {
	return Event{
		Type:       t,
		CourrierID: c.ID,
		Number:     c.Number,
		Status:     string(c.Status),
		Version:    c.Version,
		OccurredAt: c.UpdatedAt,
	}
}

// Publisher sends workflow events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
