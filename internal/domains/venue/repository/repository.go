package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/venue/model"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/logger"
	gRepo "rackcity/shared/repository"
)

type Venue interface {
	Insert(ctx context.Context, model model.Venue) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Venue, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Venue, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Nearby(ctx context.Context, lat, lon, radiusMiles float64, limit int) ([]model.VenueDistance, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Venue]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Venue {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Venue](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// nearbyQuery computes the same haversine expression as shared/geo.Distance
// so the server path and the in-process fallback order venues identically.
const nearbyQuery = `
SELECT * FROM (
	SELECT venues.*,
		(2 * :earth_radius * asin(sqrt(
			power(sin(radians(venues.latitude - :lat) / 2), 2) +
			cos(radians(:lat)) * cos(radians(venues.latitude)) *
			power(sin(radians(venues.longitude - :lon) / 2), 2)
		))) AS distance_miles
	FROM venues
	WHERE venues.is_active = true
	  AND venues.latitude IS NOT NULL
	  AND venues.longitude IS NOT NULL
) nearby
WHERE nearby.distance_miles <= :radius
ORDER BY nearby.distance_miles ASC
LIMIT :limit`

func (repo *repositoryImpl) Nearby(ctx context.Context, lat, lon, radiusMiles float64, limit int) ([]model.VenueDistance, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".venue.Nearby")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, nearbyQuery)

	args := map[string]any{
		"earth_radius": constant.EarthRadiusMiles,
		"lat":          lat,
		"lon":          lon,
		"radius":       radiusMiles,
		"limit":        limit,
	}

	var venues []model.VenueDistance

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, nearbyQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return venues, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &venues, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return venues, fmt.Errorf("failed to get nearby venues: %w", err)
	}

	return venues, nil
}
