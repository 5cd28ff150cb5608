package crm

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventClaimCreated         EventType = "claim.created"
	EventLeadCreated          EventType = "lead.created"
	EventReservationConfirmed EventType = "reservation.confirmed"
)

// Event is the outbound payload mirrored to the marketing CRM. Events are
// emitted after a successful mutation and delivered by the worker; delivery
// never affects the mutation's own outcome.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func NewEvent(eventType EventType, occurredAt time.Time, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt,
		Payload:    payload,
	}
}
