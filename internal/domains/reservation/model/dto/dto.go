package dto

import (
	"time"

	"rackcity/internal/domains/reservation/model"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
)

type CreateReservationRequest struct {
	VenueID         string `json:"venue_id"         validate:"required,uuid4"`
	Date            string `json:"date"             validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=30,max=240"`
	PartySize       int    `json:"party_size"       validate:"required,min=1,max=20"`
	TableType       string `json:"table_type"       validate:"omitempty,max=50"`
	AnyTable        bool   `json:"any_table"`
	Notes           string `json:"notes"            validate:"omitempty,max=500"`
}

type ReservationResponse struct {
	ID          string  `json:"id"`
	VenueID     string  `json:"venue_id"`
	TableID     *string `json:"table_id,omitempty"`
	UserID      string  `json:"user_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	PartySize   int     `json:"party_size"`
	Status      string  `json:"status"`
	TableType   string  `json:"table_type,omitempty"`
	AnyTable    bool    `json:"any_table"`
	Notes       string  `json:"notes,omitempty"`
	ConfirmedAt string  `json:"confirmed_at,omitempty"`
	CancelledAt string  `json:"cancelled_at,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) {
	r.ID = mod.ID
	r.VenueID = mod.VenueID
	r.TableID = mod.TableID
	r.UserID = mod.UserID
	r.StartTime = mod.StartTime.Format(constant.DateFormat)
	r.EndTime = mod.EndTime.Format(constant.DateFormat)
	r.PartySize = mod.PartySize
	r.Status = mod.Status
	r.TableType = mod.TableType
	r.AnyTable = mod.AnyTable
	r.Notes = mod.Notes

	if mod.ConfirmedAt != nil {
		r.ConfirmedAt = mod.ConfirmedAt.Format(constant.DateFormat)
	}

	if mod.CancelledAt != nil {
		r.CancelledAt = mod.CancelledAt.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled no_show"`
}

// Slot is one 30-minute-stepped availability window.
type Slot struct {
	StartTime       string `json:"start_time"`
	Available       bool   `json:"available"`
	TablesAvailable int    `json:"tables_available"`
}

type AvailabilityResponse struct {
	VenueID     string `json:"venue_id"`
	Date        string `json:"date"`
	TotalTables int    `json:"total_tables"`
	Slots       []Slot `json:"slots"`
}

// SlotStart parses a slot's wall-clock start on the given day.
func SlotStart(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.ParseInLocation(constant.TimeOnlyFormat, clock, day.Location())
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}
