package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rackcity/config"
	"rackcity/infras/otel/mocks"
	s3Mocks "rackcity/infras/s3/mocks"
	claimMocks "rackcity/internal/domains/claim/mocks"
	"rackcity/internal/domains/claim/model"
	"rackcity/internal/domains/claim/model/dto"
	"rackcity/internal/domains/claim/service"
	venueMocks "rackcity/internal/domains/venue/mocks"
	venueModel "rackcity/internal/domains/venue/model"
	crmMocks "rackcity/internal/events/crm/mocks"
	cacheMocks "rackcity/shared/cache/mocks"
	"rackcity/shared/constant"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
)

type claimMockSet struct {
	repo      *claimMocks.MockClaim
	venueRepo *venueMocks.MockVenue
	producer  *crmMocks.MockProducer
	s3        *s3Mocks.MockS3
	cache     *cacheMocks.MockRedisCache
}

func newClaimService(t *testing.T) (service.Claim, claimMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := claimMockSet{
		repo:      claimMocks.NewMockClaim(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		producer:  crmMocks.NewMockProducer(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "rackcity-uploads"

	svc := service.New(set.repo, set.venueRepo, set.producer, set.s3, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestClaimService_Create(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	actor := gModel.Actor{ID: "user-1", Email: "user@example.com", Role: constant.RoleUser}

	req := dto.CreateClaimRequest{
		VenueID: venueID,
		Proof:   "data:image/png;base64,aGVsbG8gd29ybGQ=",
		Message: "I run this hall",
	}

	unclaimedVenue := venueModel.Venue{ID: venueID, IsActive: true}

	tests := []struct {
		name      string
		actor     gModel.Actor
		req       dto.CreateClaimRequest
		setupMock func(set claimMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "successful claim",
			actor: actor,
			req:   req,
			setupMock: func(set claimMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unclaimedVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				set.s3.EXPECT().
					UploadFileBytes(gomock.Any(), "rackcity-uploads", model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("https://cdn.example.com/claims/proof.png", nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.producer.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:  "venue already claimed",
			actor: actor,
			req:   req,
			setupMock: func(set claimMockSet) {
				claimed := unclaimedVenue
				claimed.IsClaimed = true

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(claimed, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "duplicate pending claim",
			actor: actor,
			req:   req,
			setupMock: func(set claimMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unclaimedVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "malformed proof",
			actor: actor,
			req: dto.CreateClaimRequest{
				VenueID: venueID,
				Proof:   "not-a-data-uri",
			},
			setupMock: func(set claimMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unclaimedVenue, nil)

				set.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name:      "anonymous caller",
			actor:     gModel.Actor{},
			req:       req,
			setupMock: func(set claimMockSet) {},
			wantErr:   true,
			wantCode:  401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newClaimService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), tt.actor, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, "https://cdn.example.com/claims/proof.png", res.ProofURL)
		})
	}
}

func TestClaimService_Approve(t *testing.T) {
	claimID := "b51c3aa7-5cf2-4eb2-8d6a-62c4912a8a77"
	admin := gModel.Actor{ID: "admin-1", Role: constant.RoleAdmin}

	pending := model.Claim{
		ID:      claimID,
		VenueID: "venue-1",
		UserID:  "user-1",
		Status:  model.StatusPending,
	}

	tests := []struct {
		name      string
		actor     gModel.Actor
		setupMock func(set claimMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "admin approves pending claim",
			actor: admin,
			setupMock: func(set claimMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.repo.EXPECT().
					Approve(gomock.Any(), pending, admin.ID).
					Return(nil)

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "non-admin forbidden",
			actor:     gModel.Actor{ID: "user-1", Role: constant.RoleUser},
			setupMock: func(set claimMockSet) {},
			wantErr:   true,
			wantCode:  403,
		},
		{
			name:  "already reviewed",
			actor: admin,
			setupMock: func(set claimMockSet) {
				reviewed := pending
				reviewed.Status = model.StatusApproved

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reviewed, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "missing claim",
			actor: admin,
			setupMock: func(set claimMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Claim{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newClaimService(t)
			tt.setupMock(set)

			err := svc.Approve(context.Background(), tt.actor, claimID)

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

func TestClaimService_Reject(t *testing.T) {
	claimID := "b51c3aa7-5cf2-4eb2-8d6a-62c4912a8a77"
	admin := gModel.Actor{ID: "admin-1", Role: constant.RoleAdmin}

	svc, set := newClaimService(t)

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Claim{ID: claimID, VenueID: "venue-1", UserID: "user-1", Status: model.StatusPending}, nil)

	set.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusRejected, fields[model.FieldStatus])
			assert.Equal(t, admin.ID, fields[model.FieldReviewedBy])

			return nil
		})

	set.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := svc.Reject(context.Background(), admin, claimID)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
