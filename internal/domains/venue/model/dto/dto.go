package dto

import (
	"net/http"
	"strconv"
	"strings"

	"rackcity/internal/domains/venue/model"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

// SearchVenuesRequest carries the directory search filters. Zero values mean
// "no filter"; Normalize clamps pagination into the legal range.
type SearchVenuesRequest struct {
	Query      string   `json:"q"           validate:"omitempty,max=100"`
	State      string   `json:"state"       validate:"omitempty,max=20"`
	TableTypes []string `json:"table_types" validate:"omitempty,dive,max=50"`
	Amenities  []string `json:"amenities"   validate:"omitempty,dive,max=50"`
	Page       int      `json:"page"        validate:"omitempty,min=0"`
	Limit      int      `json:"limit"       validate:"omitempty,min=0"`
}

func (r *SearchVenuesRequest) FromRequest(req *http.Request) {
	query := req.URL.Query()

	r.Query = strings.TrimSpace(query.Get(constant.RequestParamQuery))
	r.State = strings.TrimSpace(query.Get(constant.RequestParamState))

	if raw := query.Get(constant.RequestParamTableTypes); raw != "" {
		r.TableTypes = splitCSV(raw)
	}

	if raw := query.Get(constant.RequestParamAmenities); raw != "" {
		r.Amenities = splitCSV(raw)
	}

	if page, err := strconv.Atoi(query.Get(constant.RequestParamPage)); err == nil {
		r.Page = page
	}

	if limit, err := strconv.Atoi(query.Get(constant.RequestParamLimit)); err == nil {
		r.Limit = limit
	}

	r.Normalize()
}

// Normalize clamps page to >= 1 and limit into [1, MaxValueLimit].
func (r *SearchVenuesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = constant.DefaultValuePage
	}

	if r.Limit < 1 || r.Limit > constant.MaxValueLimit {
		r.Limit = constant.DefaultValueLimit
	}
}

// HasStateFilter reports whether a state filter applies; the "all" sentinel
// and the empty string both mean unfiltered.
func (r *SearchVenuesRequest) HasStateFilter() bool {
	return r.State != "" && !strings.EqualFold(r.State, constant.StateAll)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

type NearbyVenuesRequest struct {
	Latitude  float64 `json:"lat"    validate:"min=-90,max=90"`
	Longitude float64 `json:"lon"    validate:"min=-180,max=180"`
	Radius    float64 `json:"radius" validate:"omitempty,min=0"`
	Limit     int     `json:"limit"  validate:"omitempty,min=0"`
}

func (r *NearbyVenuesRequest) Normalize() {
	if r.Radius <= 0 {
		r.Radius = constant.DefaultRadiusMiles
	}

	if r.Limit < 1 || r.Limit > constant.MaxValueLimit {
		r.Limit = constant.DefaultNearbyLimit
	}
}

type CreateVenueRequest struct {
	Slug        string   `json:"slug"        validate:"required,max=120"`
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Address     string   `json:"address"     validate:"omitempty,max=300"`
	City        string   `json:"city"        validate:"required,max=100"`
	State       string   `json:"state"       validate:"required,max=20"`
	Zip         string   `json:"zip"         validate:"omitempty,max=20"`
	Latitude    *float64 `json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude"   validate:"omitempty,min=-180,max=180"`
	TableTypes  []string `json:"table_types" validate:"omitempty,dive,max=50"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=50"`
	NumTables   int      `json:"num_tables"  validate:"omitempty,min=0"`
}

func (c *CreateVenueRequest) ToModel(user string) model.Venue {
	return model.Venue{
		ID:          uuid.NewString(),
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Zip:         c.Zip,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		TableTypes:  c.TableTypes,
		Amenities:   c.Amenities,
		NumTables:   c.NumTables,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateVenueRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=200"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Address     string   `db:"address"     json:"address"     validate:"omitempty,max=300"`
	City        string   `db:"city"        json:"city"        validate:"omitempty,max=100"`
	State       string   `db:"state"       json:"state"       validate:"omitempty,max=20"`
	Zip         string   `db:"zip"         json:"zip"         validate:"omitempty,max=20"`
	Latitude    *float64 `db:"latitude"    json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `db:"longitude"   json:"longitude"   validate:"omitempty,min=-180,max=180"`
	TableTypes  []string `db:"table_types" json:"table_types" validate:"omitempty,dive,max=50"`
	Amenities   []string `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=50"`
	NumTables   *int     `db:"num_tables"  json:"num_tables"  validate:"omitempty,min=0"`
}

type VenueResponse struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	TableTypes  []string `json:"table_types"`
	Amenities   []string `json:"amenities"`
	NumTables   int      `json:"num_tables"`
	IsClaimed   bool     `json:"is_claimed"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(mod model.Venue) {
	r.ID = mod.ID
	r.Slug = mod.Slug
	r.Name = mod.Name
	r.Description = mod.Description
	r.Address = mod.Address
	r.City = mod.City
	r.State = mod.State
	r.Zip = mod.Zip
	r.Latitude = mod.Latitude
	r.Longitude = mod.Longitude
	r.TableTypes = mod.TableTypes
	r.Amenities = mod.Amenities
	r.NumTables = mod.NumTables
	r.IsClaimed = mod.IsClaimed
	r.Rating = mod.Rating
	r.ReviewCount = mod.ReviewCount
	r.Metadata.FromModel(mod.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}

type NearbyVenueResponse struct {
	VenueResponse
	DistanceMiles float64 `json:"distance_miles"`
}

type NearbyVenuesResponse struct {
	Venues []NearbyVenueResponse `json:"venues"`
}

func (r *NearbyVenuesResponse) FromModels(models []model.VenueDistance) {
	r.Venues = make([]NearbyVenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod.Venue)
		r.Venues[i].DistanceMiles = mod.DistanceMiles
	}
}
