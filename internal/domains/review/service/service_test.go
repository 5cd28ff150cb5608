package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rackcity/config"
	"rackcity/infras/otel/mocks"
	reservationMocks "rackcity/internal/domains/reservation/mocks"
	reviewMocks "rackcity/internal/domains/review/mocks"
	"rackcity/internal/domains/review/model"
	"rackcity/internal/domains/review/model/dto"
	"rackcity/internal/domains/review/service"
	venueMocks "rackcity/internal/domains/venue/mocks"
	venueModel "rackcity/internal/domains/venue/model"
	cacheMocks "rackcity/shared/cache/mocks"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
)

type reviewMockSet struct {
	repo      *reviewMocks.MockReview
	venueRepo *venueMocks.MockVenue
	resRepo   *reservationMocks.MockReservation
	cache     *cacheMocks.MockRedisCache
}

func newReviewService(t *testing.T) (service.Review, reviewMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := reviewMockSet{
		repo:      reviewMocks.NewMockReview(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		resRepo:   reservationMocks.NewMockReservation(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(set.repo, set.venueRepo, set.resRepo, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestReviewService_Create(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	actor := gModel.Actor{ID: "user-1", Role: constant.RoleUser}

	req := dto.CreateReviewRequest{
		VenueID:       venueID,
		RatingOverall: 5,
		Comment:       "Great felt, fast rails",
	}

	activeVenue := venueModel.Venue{ID: venueID, IsActive: true}

	tests := []struct {
		name         string
		actor        gModel.Actor
		setupMock    func(set reviewMockSet)
		wantErr      bool
		wantCode     int
		wantVerified bool
	}{
		{
			name:  "verified review after a completed visit",
			actor: actor,
			setupMock: func(set reviewMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.resRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Aggregate(gomock.Any(), venueID).
					Return(model.Aggregate{Rating: 4.75, ReviewCount: 4}, nil)

				set.venueRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, 4.75, fields[venueModel.FieldRating])
						assert.Equal(t, 4, fields[venueModel.FieldReviewCount])

						return nil
					})

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantVerified: true,
		},
		{
			name:  "unverified review without a visit",
			actor: actor,
			setupMock: func(set reviewMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.resRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Aggregate(gomock.Any(), venueID).
					Return(model.Aggregate{Rating: 5, ReviewCount: 1}, nil)

				set.venueRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantVerified: false,
		},
		{
			name:  "duplicate review",
			actor: actor,
			setupMock: func(set reviewMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "venue not found",
			actor: actor,
			setupMock: func(set reviewMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venueModel.Venue{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:      "anonymous caller",
			actor:     gModel.Actor{},
			setupMock: func(set reviewMockSet) {},
			wantErr:   true,
			wantCode:  401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newReviewService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), tt.actor, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantVerified, res.IsVerified)
			assert.Equal(t, 5, res.RatingOverall)
		})
	}
}

func TestReviewService_ListByVenue(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"

	svc, set := newReviewService(t)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	set.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Review{
			{ID: "review-1", VenueID: venueID, UserID: "user-1", RatingOverall: 5},
			{ID: "review-2", VenueID: venueID, UserID: "user-2", RatingOverall: 4},
		}, nil)

	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.ListByVenue(context.Background(), venueID, gDto.QueryParams{Page: 1, Limit: 12})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 2, res.TotalData)
}
