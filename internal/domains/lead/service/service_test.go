package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rackcity/config"
	"rackcity/infras/otel/mocks"
	leadMocks "rackcity/internal/domains/lead/mocks"
	"rackcity/internal/domains/lead/model"
	"rackcity/internal/domains/lead/model/dto"
	"rackcity/internal/domains/lead/service"
	venueMocks "rackcity/internal/domains/venue/mocks"
	venueModel "rackcity/internal/domains/venue/model"
	crmMocks "rackcity/internal/events/crm/mocks"
	"rackcity/shared/constant"
	"rackcity/shared/failure"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
)

type leadMockSet struct {
	repo      *leadMocks.MockLead
	venueRepo *venueMocks.MockVenue
	producer  *crmMocks.MockProducer
}

func newLeadService(t *testing.T) (service.Lead, leadMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := leadMockSet{
		repo:      leadMocks.NewMockLead(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		producer:  crmMocks.NewMockProducer(ctrl),
	}

	svc := service.New(set.repo, set.venueRepo, set.producer, &config.Config{}, mocks.NewOtel())

	return svc, set
}

func TestLeadService_Create(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"

	tests := []struct {
		name      string
		req       dto.CreateLeadRequest
		setupMock func(set leadMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "inquiry without a venue",
			req: dto.CreateLeadRequest{
				Name:    "Jordan Smith",
				Email:   "jordan@example.com",
				Message: "Do you host weekly leagues?",
			},
			setupMock: func(set leadMockSet) {
				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.producer.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "inquiry attached to a venue",
			req: dto.CreateLeadRequest{
				VenueID: &venueID,
				Name:    "Jordan Smith",
				Email:   "jordan@example.com",
				Message: "Looking to book a private event",
			},
			setupMock: func(set leadMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venueModel.Venue{ID: venueID, IsActive: true}, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.producer.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "referenced venue missing",
			req: dto.CreateLeadRequest{
				VenueID: &venueID,
				Name:    "Jordan Smith",
				Email:   "jordan@example.com",
				Message: "Hello",
			},
			setupMock: func(set leadMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venueModel.Venue{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newLeadService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusNew, res.Status)
			assert.Equal(t, tt.req.Email, res.Email)
		})
	}
}

func TestLeadService_ListAll(t *testing.T) {
	admin := gModel.Actor{ID: "admin-1", Role: constant.RoleAdmin}

	t.Run("admin lists leads", func(t *testing.T) {
		svc, set := newLeadService(t)

		set.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		set.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Lead{{ID: "lead-1", Email: "jordan@example.com", Status: model.StatusNew}}, nil)

		res, err := svc.ListAll(context.Background(), admin, gDto.QueryParams{Page: 1, Limit: 12}, "")

		assert.NoError(t, err)
		assert.Len(t, res.Leads, 1)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		svc, _ := newLeadService(t)

		_, err := svc.ListAll(context.Background(), gModel.Actor{ID: "user-1", Role: constant.RoleUser}, gDto.QueryParams{}, "")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestLeadService_UpdateStatus(t *testing.T) {
	admin := gModel.Actor{ID: "admin-1", Role: constant.RoleAdmin}
	leadID := "9f0b2fd1-14a2-4f0f-8b60-7c3f9be2ba15"

	t.Run("marks lead contacted", func(t *testing.T) {
		svc, set := newLeadService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Lead{ID: leadID, Status: model.StatusNew}, nil)

		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusContacted, fields[model.FieldStatus])

				return nil
			})

		err := svc.UpdateStatus(context.Background(), admin, leadID, dto.UpdateLeadStatusRequest{Status: model.StatusContacted})

		assert.NoError(t, err)
	})

	t.Run("missing lead", func(t *testing.T) {
		svc, set := newLeadService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Lead{}, nil)

		err := svc.UpdateStatus(context.Background(), admin, leadID, dto.UpdateLeadStatusRequest{Status: model.StatusClosed})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
