package model

import (
	"time"

	"rackcity/shared/model"
)

const (
	TableName  = "claims"
	EntityName = "claim"

	FieldID         = "id"
	FieldVenueID    = "venue_id"
	FieldUserID     = "user_id"
	FieldProofURL   = "proof_url"
	FieldMessage    = "message"
	FieldStatus     = "status"
	FieldReviewedBy = "reviewed_by"
	FieldReviewedAt = "reviewed_at"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Claim struct {
	ID         string     `db:"id"`
	VenueID    string     `db:"venue_id"`
	UserID     string     `db:"user_id"`
	ProofURL   string     `db:"proof_url"`
	Message    string     `db:"message"`
	Status     string     `db:"status"`
	ReviewedBy *string    `db:"reviewed_by"`
	ReviewedAt *time.Time `db:"reviewed_at"`
	model.Metadata
}

func (c Claim) IsPending() bool {
	return c.Status == StatusPending
}
