package service

import (
	"context"
	"fmt"
	"sort"

	"rackcity/config"
	"rackcity/infras/otel"
	"rackcity/internal/domains/venue/model"
	"rackcity/internal/domains/venue/model/dto"
	"rackcity/internal/domains/venue/repository"
	"rackcity/shared"
	"rackcity/shared/cache"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	"rackcity/shared/geo"
	gModel "rackcity/shared/model"
	"rackcity/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetVenue    = "venue:get"
	cacheGetAllVenue = "venue:gets"
	cacheCountVenue  = "venue:count"
	cacheNearbyVenue = "venue:nearby"
)

// searchOrdering puts claimed venues first, then sorts alphabetically.
// The trailing id keeps the order total so offset paging never skips or
// repeats a row.
const searchOrdering = "venues.is_claimed DESC, venues.name, venues.id"

type Venue interface {
	Search(ctx context.Context, req dto.SearchVenuesRequest) (dto.GetVenuesResponse, error)
	Nearby(ctx context.Context, req dto.NearbyVenuesRequest) dto.NearbyVenuesResponse
	Get(ctx context.Context, id string) (dto.VenueResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.VenueResponse, error)
	Create(ctx context.Context, actor gModel.Actor, req dto.CreateVenueRequest) (dto.VenueResponse, error)
	Update(ctx context.Context, actor gModel.Actor, req dto.UpdateVenueRequest, id string) error
	Deactivate(ctx context.Context, actor gModel.Actor, id string) error
}

type serviceImpl struct {
	repo  repository.Venue
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Venue {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// searchFilter translates the request into the store predicate: active venues
// only, free text against name OR city, exact state, and set-overlap matching
// on table types and amenities.
func searchFilter(req dto.SearchVenuesRequest) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	if req.Query != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "q_name",
					Field:    model.FieldName,
					Operator: gDto.FilterOperatorLike,
					Value:    req.Query,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "q_city",
					Field:    model.FieldCity,
					Operator: gDto.FilterOperatorLike,
					Value:    req.Query,
					Table:    model.TableName,
				},
			},
		})
	}

	if req.HasStateFilter() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldState,
			Operator: gDto.FilterOperatorEq,
			Value:    req.State,
			Table:    model.TableName,
		})
	}

	if len(req.TableTypes) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTableTypes,
			Operator: gDto.FilterOperatorOverlap,
			Value:    pq.StringArray(req.TableTypes),
			Table:    model.TableName,
		})
	}

	if len(req.Amenities) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldAmenities,
			Operator: gDto.FilterOperatorOverlap,
			Value:    pq.StringArray(req.Amenities),
			Table:    model.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) Search(ctx context.Context, req dto.SearchVenuesRequest) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	params := gDto.QueryParams{
		Page:    req.Page,
		Limit:   req.Limit,
		SortBy:  searchOrdering,
		SortDir: gDto.SortDirAsc,
	}

	filter := searchFilter(req)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search venues")

		return res, fmt.Errorf("failed to search venues: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}

// Nearby prefers the store-computed haversine query and falls back to
// computing distances in process. Failures degrade to an empty result since
// proximity search is a convenience feature.
func (s *serviceImpl) Nearby(ctx context.Context, req dto.NearbyVenuesRequest) (res dto.NearbyVenuesResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Nearby")
	defer scope.End()

	req.Normalize()

	res.Venues = []dto.NearbyVenueResponse{}

	models, err := s.repo.Nearby(ctx, req.Latitude, req.Longitude, req.Radius, req.Limit)
	if err == nil {
		res.FromModels(models)

		return res
	}

	log.Warn().Err(err).Msg("nearby query failed, falling back to in-process distance filter")

	models, err = s.nearbyFallback(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute nearby venues")

		return res
	}

	res.FromModels(models)

	return res
}

func (s *serviceImpl) nearbyFallback(ctx context.Context, req dto.NearbyVenuesRequest) ([]model.VenueDistance, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLatitude,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLongitude,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
		},
	}

	venues, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load geocoded venues: %w", err)
	}

	return rankByDistance(venues, req.Latitude, req.Longitude, req.Radius, req.Limit), nil
}

// rankByDistance mirrors the nearby SQL: compute haversine distance for each
// geocoded venue, drop everything past the radius, sort ascending, cap.
func rankByDistance(venues []model.Venue, lat, lon, radius float64, limit int) []model.VenueDistance {
	ranked := make([]model.VenueDistance, 0, len(venues))

	for _, venue := range venues {
		if !venue.Geocoded() {
			continue
		}

		distance := geo.Distance(lat, lon, *venue.Latitude, *venue.Longitude)
		if distance > radius {
			continue
		}

		ranked = append(ranked, model.VenueDistance{Venue: venue, DistanceMiles: distance})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVenue, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue")

		return res, nil
	}

	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return res, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty || !venue.IsActive {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	res.FromModel(venue)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	venue, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue by slug")

		return res, fmt.Errorf("failed to get venue by slug: %w", err)
	}

	if venue.ID == constant.Empty || !venue.IsActive {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, actor gModel.Actor, req dto.CreateVenueRequest) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor.IsZero() {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !actor.IsAdmin() {
		return res, failure.Forbidden("only admins may create venues") // nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, shared.FilterByID(req.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check venue slug")

		return res, fmt.Errorf("failed to check venue slug: %w", err)
	}

	if taken {
		return res, failure.Conflict("venue slug already in use") // nolint:wrapcheck
	}

	venue := req.ToModel(actor.ID)

	if err = s.repo.Insert(ctx, venue); err != nil {
		log.Error().Err(err).Msg("failed to create venue")

		return res, fmt.Errorf("failed to create venue: %w", err)
	}

	s.invalidateListings(ctx)

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor gModel.Actor, req dto.UpdateVenueRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	venue, err := s.authorizeOwner(ctx, actor, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, actor.ID)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(venue.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update venue")

		return fmt.Errorf("failed to update venue: %w", err)
	}

	s.invalidateVenue(ctx, venue.ID)

	return nil
}

// Deactivate soft-deletes; venues are never physically removed.
func (s *serviceImpl) Deactivate(ctx context.Context, actor gModel.Actor, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()

	venue, err := s.authorizeOwner(ctx, actor, id)
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldIsActive:      false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.ID,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(venue.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to deactivate venue")

		return fmt.Errorf("failed to deactivate venue: %w", err)
	}

	s.invalidateVenue(ctx, venue.ID)

	return nil
}

// authorizeOwner loads the venue and verifies the actor is its owner or an
// admin. Unauthorized callers get the same not-found as a missing venue.
func (s *serviceImpl) authorizeOwner(ctx context.Context, actor gModel.Actor, id string) (model.Venue, error) {
	if actor.IsZero() {
		return model.Venue{}, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return model.Venue{}, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return model.Venue{}, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	if !actor.IsAdmin() && !venue.OwnedBy(actor.ID) {
		return model.Venue{}, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	return venue, nil
}

func (s *serviceImpl) invalidateVenue(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVenue, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete venue from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
		shared.InvalidateCaches(c, s.cache, cacheCountVenue)
		shared.InvalidateCaches(c, s.cache, cacheNearbyVenue)
	}()
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
		shared.InvalidateCaches(c, s.cache, cacheCountVenue)
		shared.InvalidateCaches(c, s.cache, cacheNearbyVenue)
	}()
}
