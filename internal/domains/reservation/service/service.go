package service

import (
	"context"
	"fmt"
	"time"

	"rackcity/config"
	"rackcity/infras/otel"
	"rackcity/internal/domains/reservation/model"
	"rackcity/internal/domains/reservation/model/dto"
	"rackcity/internal/domains/reservation/repository"
	"rackcity/internal/events/crm"
	hoursModel "rackcity/internal/domains/hours/model"
	hoursRepo "rackcity/internal/domains/hours/repository"
	tableModel "rackcity/internal/domains/pooltable/model"
	tableRepo "rackcity/internal/domains/pooltable/repository"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/cache"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation  = "reservation:get"
	cacheGetsReservation = "reservation:gets"
	cacheAvailability    = "reservation:availability"
)

type Reservation interface {
	CheckAvailability(ctx context.Context, venueID, date string) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, actor gModel.Actor, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, actor gModel.Actor, id string) (dto.ReservationResponse, error)
	ListMine(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (dto.GetReservationsResponse, error)
	ListByVenue(ctx context.Context, actor gModel.Actor, venueID string, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, actor gModel.Actor, id string) error
	UpdateStatus(ctx context.Context, actor gModel.Actor, id string, req dto.UpdateStatusRequest) error
}

type serviceImpl struct {
	repo      repository.Reservation
	venueRepo venueRepo.Venue
	tableRepo tableRepo.PoolTable
	hoursRepo hoursRepo.Hours
	producer  crm.Producer
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	venueRepo venueRepo.Venue,
	tableRepo tableRepo.PoolTable,
	hoursRepo hoursRepo.Hours,
	producer crm.Producer,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		tableRepo: tableRepo,
		hoursRepo: hoursRepo,
		producer:  producer,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, venueID, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, venueID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return res, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty || !venue.IsActive {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	res.VenueID = venueID
	res.Date = date
	res.Slots = []dto.Slot{}

	hours, err := s.hoursRepo.Get(ctx, hoursFilter(venueID, int(day.Weekday())))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue hours")

		return res, fmt.Errorf("failed to get venue hours: %w", err)
	}

	// No hours row means the venue never opens that weekday.
	if hours.ID == constant.Empty || hours.IsClosed {
		return res, nil
	}

	totalTables, err := s.tableRepo.Count(ctx, availableTablesFilter(venueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count pool tables")

		return res, fmt.Errorf("failed to count pool tables: %w", err)
	}

	res.TotalTables = totalTables

	reservations, err := s.reservationsOn(ctx, venueID, day)
	if err != nil {
		return res, err
	}

	slots, err := generateSlots(
		day,
		hours.OpensAt,
		hours.ClosesAt,
		s.cfg.Booking.SlotStepMinutes,
		s.cfg.Booking.SlotWindowMinutes,
		totalTables,
		reservations,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate availability slots")

		return res, fmt.Errorf("failed to generate availability slots: %w", err)
	}

	res.Slots = slots

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// reservationsOn loads every reservation that starts on the given day and
// still counts against capacity.
func (s *serviceImpl) reservationsOn(ctx context.Context, venueID string, day time.Time) ([]model.Reservation, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "day_start",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    dayStart,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "day_end",
				Field:    model.FieldStartTime,
				Operator: gDto.FilterOperatorLess,
				Value:    dayStart.AddDate(0, 0, 1),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.CountedStatuses(),
				Table:    model.TableName,
			},
		},
	}

	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}

	return reservations, nil
}

func (s *serviceImpl) Create(ctx context.Context, actor gModel.Actor, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return res, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty || !venue.IsActive {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	day, err := timezone.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	startTime, err := dto.SlotStart(day, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString("start_time must be formatted as HH:MM") // nolint:wrapcheck
	}

	endTime := startTime.Add(time.Duration(req.DurationMinutes) * time.Minute)

	capacity, err := s.tableRepo.Count(ctx, availableTablesFilter(req.VenueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count pool tables")

		return res, fmt.Errorf("failed to count pool tables: %w", err)
	}

	if capacity == 0 {
		return res, failure.Conflict("venue has no bookable tables") // nolint:wrapcheck
	}

	reservation := model.Reservation{
		ID:        uuid.NewString(),
		VenueID:   req.VenueID,
		UserID:    actor.ID,
		StartTime: startTime,
		EndTime:   endTime,
		PartySize: req.PartySize,
		Status:    model.StatusConfirmed,
		TableType: req.TableType,
		AnyTable:  req.AnyTable,
		Notes:     req.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor.ID,
			ModifiedBy: actor.ID,
		},
	}

	now := timezone.Now()
	reservation.ConfirmedAt = &now

	// Table assignment happens inside the insert transaction, so a typed
	// request only conflicts when every table of that type is booked.
	if err = s.repo.InsertWithCapacity(ctx, &reservation, capacity); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.emitConfirmed(ctx, reservation)
	s.invalidateReservation(ctx, reservation)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor gModel.Actor, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.authorizeView(ctx, actor, reservation); err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    actor.ID,
				Table:    model.TableName,
			},
		},
	}

	if status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	return s.list(ctx, params, filter)
}

// ListByVenue is the venue dashboard listing; only the venue's owner or an
// admin may see it.
func (s *serviceImpl) ListByVenue(ctx context.Context, actor gModel.Actor, venueID string, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.authorizeVenueOwner(ctx, actor, venueID); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	if params.SortBy == "" {
		params.SortBy = model.FieldStartTime
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, actor gModel.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !actor.IsAdmin() && reservation.UserID != actor.ID {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !model.CanTransition(reservation.Status, model.StatusCancelled) {
		return failure.Conflict("reservation can no longer be cancelled") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		model.FieldCancelledAt:   timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.invalidateReservation(ctx, reservation)

	return nil
}

// UpdateStatus moves a reservation through its lifecycle. Confirm, complete
// and no-show are venue-side actions, so the actor must own the venue or be
// an admin.
func (s *serviceImpl) UpdateStatus(ctx context.Context, actor gModel.Actor, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if _, err = s.authorizeVenueOwner(ctx, actor, reservation.VenueID); err != nil {
		return err
	}

	if !model.CanTransition(reservation.Status, req.Status) {
		return failure.Conflict(fmt.Sprintf("reservation cannot move from %s to %s", reservation.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	switch req.Status {
	case model.StatusConfirmed:
		updatedFields[model.FieldConfirmedAt] = timezone.Now()
	case model.StatusCancelled:
		updatedFields[model.FieldCancelledAt] = timezone.Now()
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	if req.Status == model.StatusConfirmed {
		reservation.Status = model.StatusConfirmed
		s.emitConfirmed(ctx, reservation)
	}

	s.invalidateReservation(ctx, reservation)

	return nil
}

// authorizeView allows the guest who booked, the venue owner, or an admin.
func (s *serviceImpl) authorizeView(ctx context.Context, actor gModel.Actor, reservation model.Reservation) error {
	if actor.IsAdmin() || reservation.UserID == actor.ID {
		return nil
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(reservation.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if !venue.OwnedBy(actor.ID) {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) authorizeVenueOwner(ctx context.Context, actor gModel.Actor, venueID string) (venueModel.Venue, error) {
	if actor.IsZero() {
		return venueModel.Venue{}, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venueModel.Venue{}, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venueModel.Venue{}, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	if !actor.IsAdmin() && !venue.OwnedBy(actor.ID) {
		return venueModel.Venue{}, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	return venue, nil
}

// emitConfirmed hands the reservation to the CRM pipeline without blocking
// or failing the booking.
func (s *serviceImpl) emitConfirmed(ctx context.Context, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := crm.NewEvent(crm.EventReservationConfirmed, timezone.Now(), map[string]any{
			"reservation_id": reservation.ID,
			"venue_id":       reservation.VenueID,
			"user_id":        reservation.UserID,
			"start_time":     reservation.StartTime.Format(constant.DateFormat),
			"end_time":       reservation.EndTime.Format(constant.DateFormat),
			"party_size":     reservation.PartySize,
		})

		if err := s.producer.Publish(c, event); err != nil {
			log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to emit reservation event")
		}
	}()
}

func (s *serviceImpl) invalidateReservation(ctx context.Context, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetsReservation)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheAvailability, reservation.VenueID))
	}()
}

func hoursFilter(venueID string, weekday int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    hoursModel.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    hoursModel.TableName,
			},
			gDto.Filter{
				Field:    hoursModel.FieldDayOfWeek,
				Operator: gDto.FilterOperatorEq,
				Value:    weekday,
				Table:    hoursModel.TableName,
			},
		},
	}
}

func availableTablesFilter(venueID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    tableModel.TableName,
			},
			gDto.Filter{
				Field:    tableModel.FieldIsAvailable,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    tableModel.TableName,
			},
		},
	}
}
