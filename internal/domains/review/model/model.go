package model

import (
	"rackcity/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID               = "id"
	FieldVenueID          = "venue_id"
	FieldUserID           = "user_id"
	FieldRatingOverall    = "rating_overall"
	FieldRatingTables     = "rating_tables"
	FieldRatingAtmosphere = "rating_atmosphere"
	FieldRatingService    = "rating_service"
	FieldRatingValue      = "rating_value"
	FieldComment          = "comment"
	FieldIsVerified       = "is_verified"
)

// Review carries the overall score plus optional per-aspect scores. Only the
// overall score feeds the venue's aggregate rating. IsVerified marks reviews
// from guests with a completed reservation at the venue.
type Review struct {
	ID               string `db:"id"`
	VenueID          string `db:"venue_id"`
	UserID           string `db:"user_id"`
	RatingOverall    int    `db:"rating_overall"`
	RatingTables     *int   `db:"rating_tables"`
	RatingAtmosphere *int   `db:"rating_atmosphere"`
	RatingService    *int   `db:"rating_service"`
	RatingValue      *int   `db:"rating_value"`
	Comment          string `db:"comment"`
	IsVerified       bool   `db:"is_verified"`
	model.Metadata
}

// Aggregate is the venue-level rollup the venue row caches.
type Aggregate struct {
	Rating      float64 `db:"rating"`
	ReviewCount int     `db:"review_count"`
}
