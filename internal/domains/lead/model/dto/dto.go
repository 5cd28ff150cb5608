package dto

import (
	"rackcity/internal/domains/lead/model"
	"rackcity/shared"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	VenueID *string `json:"venue_id" validate:"omitempty,uuid4"`
	Name    string  `json:"name"     validate:"required,max=200"`
	Email   string  `json:"email"    validate:"required,email,max=200"`
	Phone   string  `json:"phone"    validate:"omitempty,max=30"`
	Message string  `json:"message"  validate:"required,max=2000"`
	Source  string  `json:"source"   validate:"omitempty,max=50"`
}

func (c *CreateLeadRequest) ToModel() model.Lead {
	return model.Lead{
		ID:      uuid.NewString(),
		VenueID: c.VenueID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Message: c.Message,
		Source:  c.Source,
		Status:  model.StatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  c.Email,
			ModifiedBy: c.Email,
		},
	}
}

type LeadResponse struct {
	ID      string  `json:"id"`
	VenueID *string `json:"venue_id,omitempty"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone,omitempty"`
	Message string  `json:"message"`
	Source  string  `json:"source,omitempty"`
	Status  string  `json:"status"`
	gDto.Metadata
}

func (l *LeadResponse) FromModel(mod model.Lead) {
	l.ID = mod.ID
	l.VenueID = mod.VenueID
	l.Name = mod.Name
	l.Email = mod.Email
	l.Phone = mod.Phone
	l.Message = mod.Message
	l.Source = mod.Source
	l.Status = mod.Status
	l.Metadata.FromModel(mod.Metadata)
}

type GetLeadsResponse struct {
	Leads     []LeadResponse `json:"leads"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (l *GetLeadsResponse) FromModels(models []model.Lead, totalData, limit int) {
	l.TotalData = totalData
	l.TotalPage = shared.CalculateTotalPage(totalData, limit)

	l.Leads = make([]LeadResponse, len(models))
	for i, mod := range models {
		l.Leads[i].FromModel(mod)
	}
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}
