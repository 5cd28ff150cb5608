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
	venueMocks "rackcity/internal/domains/venue/mocks"
	"rackcity/internal/domains/venue/model"
	"rackcity/internal/domains/venue/model/dto"
	"rackcity/internal/domains/venue/service"
	cacheMocks "rackcity/shared/cache/mocks"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
)

func newVenueService(t *testing.T) (service.Venue, *venueMocks.MockVenue, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := venueMocks.NewMockVenue(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func ptr[T any](v T) *T {
	return &v
}

func sampleVenue(id, name string) model.Venue {
	return model.Venue{
		ID:       id,
		Slug:     name,
		Name:     name,
		City:     "Austin",
		State:    "TX",
		IsActive: true,
	}
}

func TestVenueService_Search(t *testing.T) {
	svc, mockRepo, mockCache := newVenueService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(15, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Venue, error) {
			assert.Equal(t, "venues.is_claimed DESC, venues.name, venues.id", params.SortBy,
				"ordering needs a unique trailing key for stable paging")

			return []model.Venue{
				sampleVenue("venue-1", "rack-city-billiards"),
				sampleVenue("venue-2", "southside-cues"),
			}, nil
		})

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.Search(context.Background(), dto.SearchVenuesRequest{Query: "cue", State: "TX"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Venues, 2)
	assert.Equal(t, 15, res.TotalData)
	assert.Equal(t, 2, res.TotalPage, "15 rows at the default limit of 12 spans two pages")
}

func TestVenueService_Search_CacheHit(t *testing.T) {
	svc, _, mockCache := newVenueService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			cached := value.(*dto.GetVenuesResponse)
			cached.TotalData = 1
			cached.Venues = []dto.VenueResponse{{ID: "venue-1"}}

			return nil
		})

	res, err := svc.Search(context.Background(), dto.SearchVenuesRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
}

func TestVenueService_Nearby(t *testing.T) {
	downtown := sampleVenue("venue-1", "downtown-hall")
	downtown.Latitude = ptr(30.2672)
	downtown.Longitude = ptr(-97.7431)

	t.Run("store query succeeds", func(t *testing.T) {
		svc, mockRepo, _ := newVenueService(t)

		mockRepo.EXPECT().
			Nearby(gomock.Any(), 30.2672, -97.7431, 25.0, 20).
			Return([]model.VenueDistance{{Venue: downtown, DistanceMiles: 0.4}}, nil)

		res := svc.Nearby(context.Background(), dto.NearbyVenuesRequest{
			Latitude:  30.2672,
			Longitude: -97.7431,
		})

		assert.Len(t, res.Venues, 1)
		assert.Equal(t, 0.4, res.Venues[0].DistanceMiles)
	})

	t.Run("falls back to in-process ranking", func(t *testing.T) {
		svc, mockRepo, _ := newVenueService(t)

		farAway := sampleVenue("venue-2", "gotham-billiards")
		farAway.Latitude = ptr(40.7128)
		farAway.Longitude = ptr(-74.0060)

		notGeocoded := sampleVenue("venue-3", "mystery-hall")

		mockRepo.EXPECT().
			Nearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("function earth_distance does not exist"))

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Venue{downtown, farAway, notGeocoded}, nil)

		res := svc.Nearby(context.Background(), dto.NearbyVenuesRequest{
			Latitude:  30.2672,
			Longitude: -97.7431,
			Radius:    50,
		})

		assert.Len(t, res.Venues, 1, "only the venue within the radius survives")
		assert.Equal(t, "venue-1", res.Venues[0].ID)
		assert.InDelta(t, 0, res.Venues[0].DistanceMiles, 0.01)
	})

	t.Run("degrades to empty on store failure", func(t *testing.T) {
		svc, mockRepo, _ := newVenueService(t)

		mockRepo.EXPECT().
			Nearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		res := svc.Nearby(context.Background(), dto.NearbyVenuesRequest{Latitude: 30, Longitude: -97})

		assert.Empty(t, res.Venues)
	})
}

func TestVenueService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sampleVenue("venue-1", "rack-city-billiards"), nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "missing row",
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Venue{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "deactivated venue hidden",
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				inactive := sampleVenue("venue-1", "rack-city-billiards")
				inactive.IsActive = false

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newVenueService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), "venue-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "venue-1", res.ID)
		})
	}
}

func TestVenueService_Create(t *testing.T) {
	admin := gModel.Actor{ID: "admin-1", Role: constant.RoleAdmin}

	req := dto.CreateVenueRequest{
		Slug:  "rack-city-billiards",
		Name:  "Rack City Billiards",
		City:  "Austin",
		State: "TX",
	}

	tests := []struct {
		name      string
		actor     gModel.Actor
		setupMock func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "admin creates a venue",
			actor: admin,
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "non-admin forbidden",
			actor:     gModel.Actor{ID: "user-1", Role: constant.RoleUser},
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  403,
		},
		{
			name:  "slug collision",
			actor: admin,
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newVenueService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Create(context.Background(), tt.actor, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, req.Slug, res.Slug)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestVenueService_Deactivate(t *testing.T) {
	ownerID := "owner-1"
	owned := sampleVenue("venue-1", "rack-city-billiards")
	owned.OwnerID = &ownerID
	owned.IsClaimed = true

	tests := []struct {
		name      string
		actor     gModel.Actor
		setupMock func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "owner deactivates",
			actor: gModel.Actor{ID: ownerID, Role: constant.RoleOwner},
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:  "stranger reads as missing",
			actor: gModel.Actor{ID: "user-9", Role: constant.RoleUser},
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:      "anonymous",
			actor:     gModel.Actor{},
			setupMock: func(mockRepo *venueMocks.MockVenue, mockCache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newVenueService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Deactivate(context.Background(), tt.actor, "venue-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
