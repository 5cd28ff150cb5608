package model

import (
	"time"

	"rackcity/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldVenueID     = "venue_id"
	FieldTableID     = "table_id"
	FieldUserID      = "user_id"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldPartySize   = "party_size"
	FieldStatus      = "status"
	FieldTableType   = "table_type"
	FieldAnyTable    = "any_table"
	FieldNotes       = "notes"
	FieldConfirmedAt = "confirmed_at"
	FieldCancelledAt = "cancelled_at"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// transitions is the reservation lifecycle. Terminal states have no exits.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// ActiveStatuses are the statuses that occupy table capacity.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}

// CountedStatuses are the statuses the availability calculator counts
// against a day's slots (everything except cancelled and no-show).
func CountedStatuses() []string {
	return []string{StatusPending, StatusConfirmed, StatusCompleted}
}

type Reservation struct {
	ID          string     `db:"id"`
	VenueID     string     `db:"venue_id"`
	TableID     *string    `db:"table_id"`
	UserID      string     `db:"user_id"`
	StartTime   time.Time  `db:"start_time"`
	EndTime     time.Time  `db:"end_time"`
	PartySize   int        `db:"party_size"`
	Status      string     `db:"status"`
	TableType   string     `db:"table_type"`
	AnyTable    bool       `db:"any_table"`
	Notes       string     `db:"notes"`
	ConfirmedAt *time.Time `db:"confirmed_at"`
	CancelledAt *time.Time `db:"cancelled_at"`
	model.Metadata
}

// Overlaps reports whether the reservation's [start, end) interval
// intersects the given window.
func (r *Reservation) Overlaps(windowStart, windowEnd time.Time) bool {
	return windowStart.Before(r.EndTime) && windowEnd.After(r.StartTime)
}
