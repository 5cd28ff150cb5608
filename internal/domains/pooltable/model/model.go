package model

import (
	"rackcity/shared/model"
)

const (
	TableName  = "pool_tables"
	EntityName = "pool_table"

	FieldID           = "id"
	FieldVenueID      = "venue_id"
	FieldTableType    = "table_type"
	FieldClothColor   = "cloth_color"
	FieldHourlyRate   = "hourly_rate"
	FieldIsAvailable  = "is_available"
	FieldDisplayOrder = "display_order"
)

type PoolTable struct {
	ID           string  `db:"id"`
	VenueID      string  `db:"venue_id"`
	TableType    string  `db:"table_type"`
	ClothColor   string  `db:"cloth_color"`
	HourlyRate   float64 `db:"hourly_rate"`
	IsAvailable  bool    `db:"is_available"`
	DisplayOrder int     `db:"display_order"`
	model.Metadata
}
