package dto

import (
	"rackcity/internal/domains/hours/model"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

type HoursEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpensAt   string `json:"opens_at"    validate:"omitempty,datetime=15:04"`
	ClosesAt  string `json:"closes_at"   validate:"omitempty,datetime=15:04"`
	IsClosed  bool   `json:"is_closed"`
}

type UpsertHoursRequest struct {
	Entries []HoursEntry `json:"entries" validate:"required,min=1,max=7,dive"`
}

func (r *UpsertHoursRequest) ToModels(venueID, user string) []model.VenueHours {
	models := make([]model.VenueHours, len(r.Entries))

	for i, entry := range r.Entries {
		models[i] = model.VenueHours{
			ID:        uuid.NewString(),
			VenueID:   venueID,
			DayOfWeek: entry.DayOfWeek,
			OpensAt:   entry.OpensAt,
			ClosesAt:  entry.ClosesAt,
			IsClosed:  entry.IsClosed,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return models
}

type HoursResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	OpensAt   string `json:"opens_at"`
	ClosesAt  string `json:"closes_at"`
	IsClosed  bool   `json:"is_closed"`
}

type GetHoursResponse struct {
	VenueID string          `json:"venue_id"`
	Hours   []HoursResponse `json:"hours"`
}

func (r *GetHoursResponse) FromModels(venueID string, models []model.VenueHours) {
	r.VenueID = venueID

	r.Hours = make([]HoursResponse, len(models))
	for i, mod := range models {
		r.Hours[i] = HoursResponse{
			DayOfWeek: mod.DayOfWeek,
			OpensAt:   mod.OpensAt,
			ClosesAt:  mod.ClosesAt,
			IsClosed:  mod.IsClosed,
		}
	}
}
