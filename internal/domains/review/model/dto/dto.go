package dto

import (
	"rackcity/internal/domains/review/model"
	"rackcity/shared"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	VenueID          string `json:"-"                 validate:"omitempty,uuid4"`
	RatingOverall    int    `json:"rating_overall"    validate:"required,min=1,max=5"`
	RatingTables     *int   `json:"rating_tables"     validate:"omitempty,min=1,max=5"`
	RatingAtmosphere *int   `json:"rating_atmosphere" validate:"omitempty,min=1,max=5"`
	RatingService    *int   `json:"rating_service"    validate:"omitempty,min=1,max=5"`
	RatingValue      *int   `json:"rating_value"      validate:"omitempty,min=1,max=5"`
	Comment          string `json:"comment"           validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user string, verified bool) model.Review {
	return model.Review{
		ID:               uuid.NewString(),
		VenueID:          c.VenueID,
		UserID:           user,
		RatingOverall:    c.RatingOverall,
		RatingTables:     c.RatingTables,
		RatingAtmosphere: c.RatingAtmosphere,
		RatingService:    c.RatingService,
		RatingValue:      c.RatingValue,
		Comment:          c.Comment,
		IsVerified:       verified,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewResponse struct {
	ID               string `json:"id"`
	VenueID          string `json:"venue_id"`
	UserID           string `json:"user_id"`
	RatingOverall    int    `json:"rating_overall"`
	RatingTables     *int   `json:"rating_tables,omitempty"`
	RatingAtmosphere *int   `json:"rating_atmosphere,omitempty"`
	RatingService    *int   `json:"rating_service,omitempty"`
	RatingValue      *int   `json:"rating_value,omitempty"`
	Comment          string `json:"comment,omitempty"`
	IsVerified       bool   `json:"is_verified"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(mod model.Review) {
	r.ID = mod.ID
	r.VenueID = mod.VenueID
	r.UserID = mod.UserID
	r.RatingOverall = mod.RatingOverall
	r.RatingTables = mod.RatingTables
	r.RatingAtmosphere = mod.RatingAtmosphere
	r.RatingService = mod.RatingService
	r.RatingValue = mod.RatingValue
	r.Comment = mod.Comment
	r.IsVerified = mod.IsVerified
	r.Metadata.FromModel(mod.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
