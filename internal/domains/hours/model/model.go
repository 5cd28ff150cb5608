package model

import (
	"rackcity/shared/model"
)

const (
	TableName  = "venue_hours"
	EntityName = "venue_hours"

	FieldID        = "id"
	FieldVenueID   = "venue_id"
	FieldDayOfWeek = "day_of_week"
	FieldOpensAt   = "opens_at"
	FieldClosesAt  = "closes_at"
	FieldIsClosed  = "is_closed"
)

// VenueHours is one row per (venue, weekday). DayOfWeek follows time.Weekday
// numbering: 0 = Sunday through 6 = Saturday. Opens/closes are local
// times-of-day in "HH:MM" (or "HH:MM:SS" as Postgres returns TIME columns).
type VenueHours struct {
	ID        string `db:"id"`
	VenueID   string `db:"venue_id"`
	DayOfWeek int    `db:"day_of_week"`
	OpensAt   string `db:"opens_at"`
	ClosesAt  string `db:"closes_at"`
	IsClosed  bool   `db:"is_closed"`
	model.Metadata
}
