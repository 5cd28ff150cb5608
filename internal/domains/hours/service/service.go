package service

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/internal/domains/hours/model"
	"rackcity/internal/domains/hours/model/dto"
	"rackcity/internal/domains/hours/repository"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"

	"github.com/rs/zerolog/log"
)

type Hours interface {
	ListByVenue(ctx context.Context, venueID string) (dto.GetHoursResponse, error)
	Upsert(ctx context.Context, actor gModel.Actor, venueID string, req dto.UpsertHoursRequest) error
}

type serviceImpl struct {
	repo      repository.Hours
	venueRepo venueRepo.Venue
	otel      otel.Otel
}

func New(repo repository.Hours, venueRepo venueRepo.Venue, otel otel.Otel) Hours {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		otel:      otel,
	}
}

func (s *serviceImpl) ListByVenue(ctx context.Context, venueID string) (res dto.GetHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  model.FieldDayOfWeek,
		SortDir: gDto.SortDirAsc,
	}

	hours, err := s.repo.GetAll(ctx, params, shared.FilterByID(venueID, model.FieldVenueID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue hours")

		return res, fmt.Errorf("failed to get venue hours: %w", err)
	}

	res.FromModels(venueID, hours)

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, actor gModel.Actor, venueID string, req dto.UpsertHoursRequest) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()

	if actor.IsZero() {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return failure.NotFound("venue not found") // nolint:wrapcheck
	}

	if !actor.IsAdmin() && !venue.OwnedBy(actor.ID) {
		return failure.NotFound("venue not found") // nolint:wrapcheck
	}

	for _, entry := range req.Entries {
		if !entry.IsClosed && (entry.OpensAt == "" || entry.ClosesAt == "") {
			return failure.BadRequestFromString("open days require opens_at and closes_at") // nolint:wrapcheck
		}

		if !entry.IsClosed && entry.ClosesAt <= entry.OpensAt {
			return failure.BadRequestFromString("closes_at must be after opens_at") // nolint:wrapcheck
		}
	}

	if err := s.repo.Upsert(ctx, req.ToModels(venueID, actor.ID)); err != nil {
		log.Error().Err(err).Msg("failed to upsert venue hours")

		return fmt.Errorf("failed to upsert venue hours: %w", err)
	}

	return nil
}
