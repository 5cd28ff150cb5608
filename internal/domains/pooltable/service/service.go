package service

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/internal/domains/pooltable/model"
	"rackcity/internal/domains/pooltable/model/dto"
	"rackcity/internal/domains/pooltable/repository"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"

	"github.com/rs/zerolog/log"
)

type PoolTable interface {
	ListByVenue(ctx context.Context, venueID string) (dto.GetPoolTablesResponse, error)
	Create(ctx context.Context, actor gModel.Actor, venueID string, req dto.CreatePoolTableRequest) (dto.PoolTableResponse, error)
	Update(ctx context.Context, actor gModel.Actor, req dto.UpdatePoolTableRequest, id string) error
	Delete(ctx context.Context, actor gModel.Actor, id string) error
}

type serviceImpl struct {
	repo      repository.PoolTable
	venueRepo venueRepo.Venue
	otel      otel.Otel
}

func New(repo repository.PoolTable, venueRepo venueRepo.Venue, otel otel.Otel) PoolTable {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		otel:      otel,
	}
}

func (s *serviceImpl) ListByVenue(ctx context.Context, venueID string) (res dto.GetPoolTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  model.FieldDisplayOrder,
		SortDir: gDto.SortDirAsc,
	}

	tables, err := s.repo.GetAll(ctx, params, shared.FilterByID(venueID, model.FieldVenueID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pool tables")

		return res, fmt.Errorf("failed to get pool tables: %w", err)
	}

	res.FromModels(tables)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, actor gModel.Actor, venueID string, req dto.CreatePoolTableRequest) (res dto.PoolTableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.authorizeVenueOwner(ctx, actor, venueID); err != nil {
		return res, err
	}

	table := req.ToModel(venueID, actor.ID)

	if err = s.repo.Insert(ctx, table); err != nil {
		log.Error().Err(err).Msg("failed to create pool table")

		return res, fmt.Errorf("failed to create pool table: %w", err)
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor gModel.Actor, req dto.UpdatePoolTableRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pool table")

		return fmt.Errorf("failed to get pool table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("pool table not found") // nolint:wrapcheck
	}

	if err := s.authorizeVenueOwner(ctx, actor, table.VenueID); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, actor.ID)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update pool table")

		return fmt.Errorf("failed to update pool table: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, actor gModel.Actor, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pool table")

		return fmt.Errorf("failed to get pool table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("pool table not found") // nolint:wrapcheck
	}

	if err := s.authorizeVenueOwner(ctx, actor, table.VenueID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete pool table")

		return fmt.Errorf("failed to delete pool table: %w", err)
	}

	return nil
}

func (s *serviceImpl) authorizeVenueOwner(ctx context.Context, actor gModel.Actor, venueID string) error {
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

	return nil
}
