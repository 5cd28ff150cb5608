package service

import (
	"context"
	"fmt"

	"rackcity/config"
	"rackcity/infras/otel"
	"rackcity/infras/s3"
	"rackcity/internal/domains/claim/model"
	"rackcity/internal/domains/claim/model/dto"
	"rackcity/internal/domains/claim/repository"
	"rackcity/internal/events/crm"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/base64"
	"rackcity/shared/cache"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheGetsClaim = "claim:gets"

type Claim interface {
	Create(ctx context.Context, actor gModel.Actor, req dto.CreateClaimRequest) (dto.ClaimResponse, error)
	ListMine(ctx context.Context, actor gModel.Actor, params gDto.QueryParams) (dto.GetClaimsResponse, error)
	ListAll(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (dto.GetClaimsResponse, error)
	Approve(ctx context.Context, actor gModel.Actor, id string) error
	Reject(ctx context.Context, actor gModel.Actor, id string) error
}

type serviceImpl struct {
	repo      repository.Claim
	venueRepo venueRepo.Venue
	producer  crm.Producer
	s3        s3.S3
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Claim,
	venueRepo venueRepo.Venue,
	producer crm.Producer,
	s3Client s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Claim {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		producer:  producer,
		s3:        s3Client,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor gModel.Actor, req dto.CreateClaimRequest) (res dto.ClaimResponse, err error) {
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

	if venue.IsClaimed {
		return res, failure.Conflict("venue already claimed") // nolint:wrapcheck
	}

	pending, err := s.repo.Exist(ctx, pendingClaimFilter(req.VenueID, actor.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check pending claims")

		return res, fmt.Errorf("failed to check pending claims: %w", err)
	}

	if pending {
		return res, failure.Conflict("a claim for this venue is already pending review") // nolint:wrapcheck
	}

	proofURL, err := s.uploadProof(ctx, req.Proof)
	if err != nil {
		return res, err
	}

	claim := req.ToModel(actor.ID, proofURL)

	if err = s.repo.Insert(ctx, claim); err != nil {
		log.Error().Err(err).Msg("failed to create claim")

		return res, fmt.Errorf("failed to create claim: %w", err)
	}

	s.emitCreated(ctx, claim)
	s.invalidateListings(ctx)

	res.FromModel(claim)

	return res, nil
}

func (s *serviceImpl) uploadProof(ctx context.Context, proof string) (string, error) {
	data, contentType, err := base64.Decode(proof)
	if err != nil {
		return "", failure.BadRequestFromString("proof must be a base64 data URI") // nolint:wrapcheck
	}

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, uuid.NewString(), contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload claim proof")

		return "", fmt.Errorf("failed to upload claim proof: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, actor gModel.Actor, params gDto.QueryParams) (res dto.GetClaimsResponse, err error) {
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

	return s.list(ctx, params, filter)
}

// ListAll is the admin review queue.
func (s *serviceImpl) ListAll(ctx context.Context, actor gModel.Actor, params gDto.QueryParams, status string) (res dto.GetClaimsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !actor.IsAdmin() {
		return res, failure.Forbidden("only admins may review claims") // nolint:wrapcheck
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

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetClaimsResponse, err error) {
	if params.SortBy == "" {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count claims")

		return res, fmt.Errorf("failed to count claims: %w", err)
	}

	claims, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get claims")

		return res, fmt.Errorf("failed to get claims: %w", err)
	}

	res.FromModels(claims, total, params.Limit)

	return res, nil
}

// Approve transfers venue ownership to the claimant. Admin only.
func (s *serviceImpl) Approve(ctx context.Context, actor gModel.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	claim, err := s.pendingClaim(ctx, actor, id)
	if err != nil {
		return err
	}

	if err = s.repo.Approve(ctx, claim, actor.ID); err != nil {
		log.Error().Err(err).Msg("failed to approve claim")

		return fmt.Errorf("failed to approve claim: %w", err)
	}

	s.invalidateListings(ctx)

	return nil
}

func (s *serviceImpl) Reject(ctx context.Context, actor gModel.Actor, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	claim, err := s.pendingClaim(ctx, actor, id)
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusRejected,
		model.FieldReviewedBy:    actor.ID,
		model.FieldReviewedAt:    timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(claim.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reject claim")

		return fmt.Errorf("failed to reject claim: %w", err)
	}

	s.invalidateListings(ctx)

	return nil
}

func (s *serviceImpl) pendingClaim(ctx context.Context, actor gModel.Actor, id string) (model.Claim, error) {
	if actor.IsZero() {
		return model.Claim{}, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !actor.IsAdmin() {
		return model.Claim{}, failure.Forbidden("only admins may review claims") // nolint:wrapcheck
	}

	claim, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get claim")

		return model.Claim{}, fmt.Errorf("failed to get claim: %w", err)
	}

	if claim.ID == constant.Empty {
		return model.Claim{}, failure.NotFound("claim not found") // nolint:wrapcheck
	}

	if !claim.IsPending() {
		return model.Claim{}, failure.Conflict("claim already reviewed") // nolint:wrapcheck
	}

	return claim, nil
}

func (s *serviceImpl) emitCreated(ctx context.Context, claim model.Claim) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := crm.NewEvent(crm.EventClaimCreated, timezone.Now(), map[string]any{
			"claim_id": claim.ID,
			"venue_id": claim.VenueID,
			"user_id":  claim.UserID,
		})

		if err := s.producer.Publish(c, event); err != nil {
			log.Error().Err(err).Str("claimID", claim.ID).Msg("failed to emit claim event")
		}
	}()
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetsClaim)
	}()
}

func pendingClaimFilter(venueID, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.TableName,
			},
		},
	}
}
