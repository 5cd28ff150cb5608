package dto

import (
	"rackcity/internal/domains/pooltable/model"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

type CreatePoolTableRequest struct {
	TableType    string  `json:"table_type"    validate:"required,max=50"`
	ClothColor   string  `json:"cloth_color"   validate:"omitempty,max=50"`
	HourlyRate   float64 `json:"hourly_rate"   validate:"omitempty,min=0"`
	IsAvailable  *bool   `json:"is_available"  validate:"omitempty"`
	DisplayOrder int     `json:"display_order" validate:"omitempty,min=0"`
}

func (c *CreatePoolTableRequest) ToModel(venueID, user string) model.PoolTable {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.PoolTable{
		ID:           uuid.NewString(),
		VenueID:      venueID,
		TableType:    c.TableType,
		ClothColor:   c.ClothColor,
		HourlyRate:   c.HourlyRate,
		IsAvailable:  available,
		DisplayOrder: c.DisplayOrder,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePoolTableRequest struct {
	TableType    string   `db:"table_type"    json:"table_type"    validate:"omitempty,max=50"`
	ClothColor   string   `db:"cloth_color"   json:"cloth_color"   validate:"omitempty,max=50"`
	HourlyRate   *float64 `db:"hourly_rate"   json:"hourly_rate"   validate:"omitempty,min=0"`
	IsAvailable  *bool    `db:"is_available"  json:"is_available"  validate:"omitempty"`
	DisplayOrder *int     `db:"display_order" json:"display_order" validate:"omitempty,min=0"`
}

type PoolTableResponse struct {
	ID           string  `json:"id"`
	VenueID      string  `json:"venue_id"`
	TableType    string  `json:"table_type"`
	ClothColor   string  `json:"cloth_color"`
	HourlyRate   float64 `json:"hourly_rate"`
	IsAvailable  bool    `json:"is_available"`
	DisplayOrder int     `json:"display_order"`
	gDto.Metadata
}

func (r *PoolTableResponse) FromModel(mod model.PoolTable) {
	r.ID = mod.ID
	r.VenueID = mod.VenueID
	r.TableType = mod.TableType
	r.ClothColor = mod.ClothColor
	r.HourlyRate = mod.HourlyRate
	r.IsAvailable = mod.IsAvailable
	r.DisplayOrder = mod.DisplayOrder
	r.Metadata.FromModel(mod.Metadata)
}

type GetPoolTablesResponse struct {
	Tables []PoolTableResponse `json:"tables"`
}

func (r *GetPoolTablesResponse) FromModels(models []model.PoolTable) {
	r.Tables = make([]PoolTableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
