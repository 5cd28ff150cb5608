package model

import (
	"rackcity/shared/model"
)

const (
	TableName  = "leads"
	EntityName = "lead"

	FieldID      = "id"
	FieldVenueID = "venue_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
	FieldSource  = "source"
	FieldStatus  = "status"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

// Lead is a sales inquiry. VenueID is optional: a lead can reference a
// specific venue or be a general inquiry from the site.
type Lead struct {
	ID      string  `db:"id"`
	VenueID *string `db:"venue_id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   string  `db:"phone"`
	Message string  `db:"message"`
	Source  string  `db:"source"`
	Status  string  `db:"status"`
	model.Metadata
}
