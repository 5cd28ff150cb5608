package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rackcity/infras/otel/mocks"
	tableMocks "rackcity/internal/domains/pooltable/mocks"
	"rackcity/internal/domains/pooltable/model"
	"rackcity/internal/domains/pooltable/model/dto"
	"rackcity/internal/domains/pooltable/service"
	venueMocks "rackcity/internal/domains/venue/mocks"
	venueModel "rackcity/internal/domains/venue/model"
	"rackcity/shared/constant"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
)

func newPoolTableService(t *testing.T) (service.PoolTable, *tableMocks.MockPoolTable, *venueMocks.MockVenue) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := tableMocks.NewMockPoolTable(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)

	return service.New(mockRepo, mockVenueRepo, mocks.NewOtel()), mockRepo, mockVenueRepo
}

func TestPoolTableService_Create(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	ownerID := "owner-1"
	owner := gModel.Actor{ID: ownerID, Role: constant.RoleOwner}

	ownedVenue := venueModel.Venue{ID: venueID, OwnerID: &ownerID, IsActive: true}

	req := dto.CreatePoolTableRequest{
		TableType:  "nine_foot",
		ClothColor: "green",
		HourlyRate: 14,
	}

	t.Run("owner adds a table", func(t *testing.T) {
		svc, mockRepo, mockVenueRepo := newPoolTableService(t)

		mockVenueRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedVenue, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, table model.PoolTable) error {
				assert.Equal(t, venueID, table.VenueID)
				assert.True(t, table.IsAvailable, "availability defaults to true")

				return nil
			})

		res, err := svc.Create(context.Background(), owner, venueID, req)

		assert.NoError(t, err)
		assert.Equal(t, "nine_foot", res.TableType)
	})

	t.Run("stranger reads as missing venue", func(t *testing.T) {
		svc, _, mockVenueRepo := newPoolTableService(t)

		mockVenueRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedVenue, nil)

		_, err := svc.Create(context.Background(), gModel.Actor{ID: "user-9", Role: constant.RoleUser}, venueID, req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPoolTableService_Update(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	ownerID := "owner-1"
	owner := gModel.Actor{ID: ownerID, Role: constant.RoleOwner}

	existing := model.PoolTable{ID: "table-1", VenueID: venueID, TableType: "nine_foot", IsAvailable: true}

	t.Run("owner toggles availability", func(t *testing.T) {
		svc, mockRepo, mockVenueRepo := newPoolTableService(t)

		unavailable := false

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		mockVenueRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(venueModel.Venue{ID: venueID, OwnerID: &ownerID, IsActive: true}, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, model.FieldIsAvailable)

				return nil
			})

		err := svc.Update(context.Background(), owner, dto.UpdatePoolTableRequest{IsAvailable: &unavailable}, "table-1")

		assert.NoError(t, err)
	})

	t.Run("missing table", func(t *testing.T) {
		svc, mockRepo, _ := newPoolTableService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.PoolTable{}, nil)

		err := svc.Update(context.Background(), owner, dto.UpdatePoolTableRequest{}, "table-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPoolTableService_Delete(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	ownerID := "owner-1"

	svc, mockRepo, mockVenueRepo := newPoolTableService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.PoolTable{ID: "table-1", VenueID: venueID}, nil)

	mockVenueRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Venue{ID: venueID, OwnerID: &ownerID, IsActive: true}, nil)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)

	err := svc.Delete(context.Background(), gModel.Actor{ID: ownerID, Role: constant.RoleOwner}, "table-1")

	assert.NoError(t, err)
}
