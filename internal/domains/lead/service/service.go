package service

import (
	"context"
	"fmt"

	"rackcity/config"
	"rackcity/infras/otel"
	"rackcity/internal/domains/lead/model"
	"rackcity/internal/domains/lead/model/dto"
	"rackcity/internal/domains/lead/repository"
	"rackcity/internal/events/crm"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Lead interface {
	Create(ctx context.Context, req dto.CreateLeadRequest) (dto.LeadResponse, error)
	ListAll(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (dto.GetLeadsResponse, error)
	UpdateStatus(ctx context.Context, actor gModel.Actor, id string, req dto.UpdateLeadStatusRequest) error
}

type serviceImpl struct {
	repo      repository.Lead
	venueRepo venueRepo.Venue
	producer  crm.Producer
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.Lead, venueRepo venueRepo.Venue, producer crm.Producer, cfg *config.Config, otel otel.Otel) Lead {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		producer:  producer,
		cfg:       cfg,
		otel:      otel,
	}
}

// Create is the public inquiry endpoint; no actor required.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLeadRequest) (res dto.LeadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.VenueID != nil {
		venue, err := s.venueRepo.Get(ctx, shared.FilterByID(*req.VenueID, venueModel.FieldID, venueModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get venue")

			return res, fmt.Errorf("failed to get venue: %w", err)
		}

		if venue.ID == constant.Empty || !venue.IsActive {
			return res, failure.NotFound("venue not found") // nolint:wrapcheck
		}
	}

	lead := req.ToModel()

	if err = s.repo.Insert(ctx, lead); err != nil {
		log.Error().Err(err).Msg("failed to create lead")

		return res, fmt.Errorf("failed to create lead: %w", err)
	}

	s.emitCreated(ctx, lead)

	res.FromModel(lead)

	return res, nil
}

func (s *serviceImpl) ListAll(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (res dto.GetLeadsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = requireAdmin(actor); err != nil {
		return res, err
	}

	if params.SortBy == "" {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count leads")

		return res, fmt.Errorf("failed to count leads: %w", err)
	}

	leads, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get leads")

		return res, fmt.Errorf("failed to get leads: %w", err)
	}

	res.FromModels(leads, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actor gModel.Actor, id string, req dto.UpdateLeadStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = requireAdmin(actor); err != nil {
		return err
	}

	lead, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lead")

		return fmt.Errorf("failed to get lead: %w", err)
	}

	if lead.ID == constant.Empty {
		return failure.NotFound("lead not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update lead status")

		return fmt.Errorf("failed to update lead status: %w", err)
	}

	return nil
}

func requireAdmin(actor gModel.Actor) error {
	if actor.IsZero() {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !actor.IsAdmin() {
		return failure.Forbidden("only admins may manage leads") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) emitCreated(ctx context.Context, lead model.Lead) {
	go func() {
		c := context.WithoutCancel(ctx)

		payload := map[string]any{
			"lead_id": lead.ID,
			"name":    lead.Name,
			"email":   lead.Email,
			"source":  lead.Source,
		}

		if lead.VenueID != nil {
			payload["venue_id"] = *lead.VenueID
		}

		event := crm.NewEvent(crm.EventLeadCreated, timezone.Now(), payload)

		if err := s.producer.Publish(c, event); err != nil {
			log.Error().Err(err).Str("leadID", lead.ID).Msg("failed to emit lead event")
		}
	}()
}
