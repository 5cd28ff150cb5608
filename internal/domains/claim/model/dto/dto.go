package dto

import (
	"rackcity/internal/domains/claim/model"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	VenueID string `json:"venue_id" validate:"required,uuid4"`
	Proof   string `json:"proof"    validate:"required"`
	Message string `json:"message"  validate:"omitempty,max=1000"`
}

func (c *CreateClaimRequest) ToModel(user, proofURL string) model.Claim {
	return model.Claim{
		ID:       uuid.NewString(),
		VenueID:  c.VenueID,
		UserID:   user,
		ProofURL: proofURL,
		Message:  c.Message,
		Status:   model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ClaimResponse struct {
	ID         string `json:"id"`
	VenueID    string `json:"venue_id"`
	UserID     string `json:"user_id"`
	ProofURL   string `json:"proof_url"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewed_by,omitempty"`
	ReviewedAt string `json:"reviewed_at,omitempty"`
	gDto.Metadata
}

func (c *ClaimResponse) FromModel(mod model.Claim) {
	c.ID = mod.ID
	c.VenueID = mod.VenueID
	c.UserID = mod.UserID
	c.ProofURL = mod.ProofURL
	c.Message = mod.Message
	c.Status = mod.Status

	if mod.ReviewedBy != nil {
		c.ReviewedBy = *mod.ReviewedBy
	}

	if mod.ReviewedAt != nil {
		c.ReviewedAt = mod.ReviewedAt.Format(constant.DateFormat)
	}

	c.Metadata.FromModel(mod.Metadata)
}

type GetClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (c *GetClaimsResponse) FromModels(models []model.Claim, totalData, limit int) {
	c.TotalData = totalData
	c.TotalPage = shared.CalculateTotalPage(totalData, limit)

	c.Claims = make([]ClaimResponse, len(models))
	for i, mod := range models {
		c.Claims[i].FromModel(mod)
	}
}
