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
	hoursMocks "rackcity/internal/domains/hours/mocks"
	hoursModel "rackcity/internal/domains/hours/model"
	tableMocks "rackcity/internal/domains/pooltable/mocks"
	reservationMocks "rackcity/internal/domains/reservation/mocks"
	"rackcity/internal/domains/reservation/model"
	"rackcity/internal/domains/reservation/model/dto"
	"rackcity/internal/domains/reservation/service"
	venueMocks "rackcity/internal/domains/venue/mocks"
	venueModel "rackcity/internal/domains/venue/model"
	crmMocks "rackcity/internal/events/crm/mocks"
	cacheMocks "rackcity/shared/cache/mocks"
	"rackcity/shared/constant"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
)

type reservationMockSet struct {
	repo      *reservationMocks.MockReservation
	venueRepo *venueMocks.MockVenue
	tableRepo *tableMocks.MockPoolTable
	hoursRepo *hoursMocks.MockHours
	producer  *crmMocks.MockProducer
	cache     *cacheMocks.MockRedisCache
}

func newReservationService(t *testing.T) (service.Reservation, reservationMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := reservationMockSet{
		repo:      reservationMocks.NewMockReservation(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		tableRepo: tableMocks.NewMockPoolTable(ctrl),
		hoursRepo: hoursMocks.NewMockHours(ctrl),
		producer:  crmMocks.NewMockProducer(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.SlotStepMinutes = 30
	cfg.Booking.SlotWindowMinutes = 60

	svc := service.New(
		set.repo,
		set.venueRepo,
		set.tableRepo,
		set.hoursRepo,
		set.producer,
		cfg,
		set.cache,
		mocks.NewOtel(),
	)

	return svc, set
}

func activeVenue(id, ownerID string) venueModel.Venue {
	return venueModel.Venue{
		ID:       id,
		OwnerID:  &ownerID,
		IsActive: true,
	}
}

func TestReservationService_CheckAvailability(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"

	tests := []struct {
		name      string
		date      string
		setupMock func(set reservationMockSet)
		wantErr   bool
		check     func(t *testing.T, res dto.AvailabilityResponse)
	}{
		{
			name: "open day with one reservation",
			date: "2026-03-02",
			setupMock: func(set reservationMockSet) {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.hoursRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hoursModel.VenueHours{
						ID:       "hours-1",
						VenueID:  venueID,
						OpensAt:  "10:00",
						ClosesAt: "22:00",
					}, nil)

				set.tableRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{
						{
							ID:        "res-1",
							VenueID:   venueID,
							StartTime: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
							EndTime:   time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC),
							Status:    model.StatusConfirmed,
						},
					}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.AvailabilityResponse) {
				assert.Equal(t, venueID, res.VenueID)
				assert.Equal(t, 1, res.TotalTables)
				assert.Len(t, res.Slots, 24)

				byStart := map[string]bool{}
				for _, slot := range res.Slots {
					byStart[slot.StartTime] = slot.Available
				}

				assert.False(t, byStart["14:00"])
				assert.False(t, byStart["15:00"])
				assert.True(t, byStart["15:30"])
			},
		},
		{
			name: "closed weekday returns no slots",
			date: "2026-03-07",
			setupMock: func(set reservationMockSet) {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.hoursRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hoursModel.VenueHours{
						ID:       "hours-6",
						VenueID:  venueID,
						IsClosed: true,
					}, nil)
			},
			check: func(t *testing.T, res dto.AvailabilityResponse) {
				assert.Empty(t, res.Slots)
			},
		},
		{
			name:      "malformed date",
			date:      "03/02/2026",
			setupMock: func(set reservationMockSet) {},
			wantErr:   true,
		},
		{
			name: "inactive venue",
			date: "2026-03-02",
			setupMock: func(set reservationMockSet) {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(venueModel.Venue{ID: venueID, IsActive: false}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newReservationService(t)
			tt.setupMock(set)

			res, err := svc.CheckAvailability(context.Background(), venueID, tt.date)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestReservationService_Create(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	actor := gModel.Actor{ID: "user-1", Email: "user@example.com", Role: constant.RoleUser}

	req := dto.CreateReservationRequest{
		VenueID:         venueID,
		Date:            "2026-03-02",
		StartTime:       "14:00",
		DurationMinutes: 90,
		PartySize:       4,
		AnyTable:        true,
	}

	tests := []struct {
		name      string
		actor     gModel.Actor
		req       dto.CreateReservationRequest
		setupMock   func(set reservationMockSet)
		wantErr     bool
		wantCode    int
		wantTableID string
	}{
		{
			name:  "successful booking",
			actor: actor,
			req:   req,
			setupMock: func(set reservationMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.tableRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)

				set.repo.EXPECT().
					InsertWithCapacity(gomock.Any(), gomock.Any(), 3).
					Return(nil)

				set.producer.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:  "table type request is resolved by the writer",
			actor: actor,
			req: dto.CreateReservationRequest{
				VenueID:         venueID,
				Date:            "2026-03-02",
				StartTime:       "14:00",
				DurationMinutes: 60,
				PartySize:       2,
				TableType:       "snooker",
			},
			setupMock: func(set reservationMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.tableRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(3, nil)

				set.repo.EXPECT().
					InsertWithCapacity(gomock.Any(), gomock.Any(), 3).
					DoAndReturn(func(_ context.Context, res *model.Reservation, _ int) error {
						assert.Equal(t, "snooker", res.TableType)
						assert.Nil(t, res.TableID)

						tableID := "table-7"
						res.TableID = &tableID

						return nil
					})

				set.producer.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantTableID: "table-7",
		},
		{
			name:      "anonymous caller",
			actor:     gModel.Actor{},
			req:       req,
			setupMock: func(set reservationMockSet) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name:  "venue without tables",
			actor: actor,
			req:   req,
			setupMock: func(set reservationMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.tableRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "slot already taken",
			actor: actor,
			req:   req,
			setupMock: func(set reservationMockSet) {
				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)

				set.tableRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					InsertWithCapacity(gomock.Any(), gomock.Any(), 1).
					Return(failure.Conflict("slot no longer available"))
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newReservationService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), tt.actor, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, res.Status)
			assert.Equal(t, tt.actor.ID, res.UserID)

			if tt.wantTableID != "" {
				assert.NotNil(t, res.TableID)
				assert.Equal(t, tt.wantTableID, *res.TableID)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	reservationID := "8a1f4cc0-93f0-4df3-9ad8-31c1a3b1f402"
	owner := gModel.Actor{ID: "user-1", Role: constant.RoleUser}

	tests := []struct {
		name      string
		actor     gModel.Actor
		setupMock func(set reservationMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "guest cancels own booking",
			actor: owner,
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: "venue-1",
						UserID:  owner.ID,
						Status:  model.StatusConfirmed,
					}, nil)

				set.repo.EXPECT().
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
		},
		{
			name:  "someone else's booking reads as missing",
			actor: gModel.Actor{ID: "user-2", Role: constant.RoleUser},
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: "venue-1",
						UserID:  owner.ID,
						Status:  model.StatusConfirmed,
					}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:  "completed booking cannot be cancelled",
			actor: owner,
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: "venue-1",
						UserID:  owner.ID,
						Status:  model.StatusCompleted,
					}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newReservationService(t)
			tt.setupMock(set)

			err := svc.Cancel(context.Background(), tt.actor, reservationID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	reservationID := "8a1f4cc0-93f0-4df3-9ad8-31c1a3b1f402"
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	venueOwner := gModel.Actor{ID: "owner-1", Role: constant.RoleOwner}

	tests := []struct {
		name      string
		actor     gModel.Actor
		status    string
		setupMock func(set reservationMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner completes a confirmed booking",
			actor:  venueOwner,
			status: model.StatusCompleted,
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: venueID,
						UserID:  "user-1",
						Status:  model.StatusConfirmed,
					}, nil)

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, venueOwner.ID), nil)

				set.repo.EXPECT().
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
		},
		{
			name:   "invalid transition",
			actor:  venueOwner,
			status: model.StatusConfirmed,
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: venueID,
						UserID:  "user-1",
						Status:  model.StatusCancelled,
					}, nil)

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, venueOwner.ID), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:   "stranger reads as missing venue",
			actor:  gModel.Actor{ID: "user-9", Role: constant.RoleUser},
			status: model.StatusCompleted,
			setupMock: func(set reservationMockSet) {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:      reservationID,
						VenueID: venueID,
						UserID:  "user-1",
						Status:  model.StatusConfirmed,
					}, nil)

				set.venueRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeVenue(venueID, "owner-1"), nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newReservationService(t)
			tt.setupMock(set)

			err := svc.UpdateStatus(context.Background(), tt.actor, reservationID, dto.UpdateStatusRequest{Status: tt.status})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}
