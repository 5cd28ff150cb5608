package service

import (
	"context"
	"fmt"

	"rackcity/config"
	"rackcity/infras/otel"
	resModel "rackcity/internal/domains/reservation/model"
	resRepo "rackcity/internal/domains/reservation/repository"
	"rackcity/internal/domains/review/model"
	"rackcity/internal/domains/review/model/dto"
	"rackcity/internal/domains/review/repository"
	venueModel "rackcity/internal/domains/venue/model"
	venueRepo "rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/cache"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetsReview = "review:gets"
	cacheVenue      = "venue:get"
)

type Review interface {
	Create(ctx context.Context, actor gModel.Actor, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	ListByVenue(ctx context.Context, venueID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	repo      repository.Review
	venueRepo venueRepo.Venue
	resRepo   resRepo.Reservation
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Review,
	venueRepo venueRepo.Venue,
	resRepo resRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		resRepo:   resRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor gModel.Actor, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
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

	reviewed, err := s.repo.Exist(ctx, userReviewFilter(req.VenueID, actor.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return res, fmt.Errorf("failed to check existing review: %w", err)
	}

	if reviewed {
		return res, failure.Conflict("you have already reviewed this venue") // nolint:wrapcheck
	}

	verified, err := s.hasCompletedVisit(ctx, req.VenueID, actor.ID)
	if err != nil {
		return res, err
	}

	review := req.ToModel(actor.ID, verified)

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	if err = s.refreshVenueRating(ctx, actor, venue.ID); err != nil {
		return res, err
	}

	s.invalidate(ctx, venue.ID)

	res.FromModel(review)

	return res, nil
}

// hasCompletedVisit marks a review verified when the guest has a completed
// reservation at the venue.
func (s *serviceImpl) hasCompletedVisit(ctx context.Context, venueID, userID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    resModel.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    resModel.TableName,
			},
			gDto.Filter{
				Field:    resModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    resModel.TableName,
			},
			gDto.Filter{
				Field:    resModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    resModel.StatusCompleted,
				Table:    resModel.TableName,
			},
		},
	}

	visited, err := s.resRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check completed reservations")

		return false, fmt.Errorf("failed to check completed reservations: %w", err)
	}

	return visited, nil
}

// refreshVenueRating recomputes the aggregate and writes it back onto the
// venue row so listings can sort and display without joining reviews.
func (s *serviceImpl) refreshVenueRating(ctx context.Context, actor gModel.Actor, venueID string) error {
	aggregate, err := s.repo.Aggregate(ctx, venueID)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate reviews")

		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	updatedFields := map[string]any{
		venueModel.FieldRating:      aggregate.Rating,
		venueModel.FieldReviewCount: aggregate.ReviewCount,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    actor.ID,
	}

	if err = s.venueRepo.Update(ctx, updatedFields, shared.FilterByID(venueID, venueModel.FieldID, venueModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update venue rating")

		return fmt.Errorf("failed to update venue rating: %w", err)
	}

	return nil
}

func (s *serviceImpl) ListByVenue(ctx context.Context, venueID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if params.SortBy == "" {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
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

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetsReview, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, venueID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheVenue, venueID)); err != nil {
			log.Error().Err(err).Msg("failed to delete venue from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetsReview)
	}()
}

func userReviewFilter(venueID, userID string) gDto.FilterGroup {
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
		},
	}
}
