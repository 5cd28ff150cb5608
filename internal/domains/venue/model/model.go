package model

import (
	"rackcity/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZip         = "zip"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldTableTypes  = "table_types"
	FieldAmenities   = "amenities"
	FieldNumTables   = "num_tables"
	FieldIsClaimed   = "is_claimed"
	FieldOwnerID     = "owner_id"
	FieldIsActive    = "is_active"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
)

type Venue struct {
	ID          string         `db:"id"`
	Slug        string         `db:"slug"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Address     string         `db:"address"`
	City        string         `db:"city"`
	State       string         `db:"state"`
	Zip         string         `db:"zip"`
	Latitude    *float64       `db:"latitude"`
	Longitude   *float64       `db:"longitude"`
	TableTypes  pq.StringArray `db:"table_types"`
	Amenities   pq.StringArray `db:"amenities"`
	NumTables   int            `db:"num_tables"`
	IsClaimed   bool           `db:"is_claimed"`
	OwnerID     *string        `db:"owner_id"`
	IsActive    bool           `db:"is_active"`
	Rating      float64        `db:"rating"`
	ReviewCount int            `db:"review_count"`
	model.Metadata
}

// VenueDistance is a venue row annotated with the haversine distance
// computed by the nearby query (or the in-process fallback).
type VenueDistance struct {
	Venue
	DistanceMiles float64 `db:"distance_miles"`
}

// OwnedBy reports whether the given user owns this venue.
func (v *Venue) OwnedBy(userID string) bool {
	return v.OwnerID != nil && *v.OwnerID == userID && userID != ""
}

// Geocoded reports whether the venue has usable coordinates.
func (v *Venue) Geocoded() bool {
	return v.Latitude != nil && v.Longitude != nil
}
