package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/hours/model"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/logger"
	gRepo "rackcity/shared/repository"
)

type Hours interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VenueHours, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.VenueHours, error)
	Upsert(ctx context.Context, models []model.VenueHours) error
}

type repositoryImpl struct {
	gRepo.Repository[model.VenueHours]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hours {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VenueHours](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const upsertQuery = `
INSERT INTO venue_hours (id, venue_id, day_of_week, opens_at, closes_at, is_closed, created_at, modified_at, created_by, modified_by)
VALUES (:id, :venue_id, :day_of_week, :opens_at, :closes_at, :is_closed, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (venue_id, day_of_week) DO UPDATE SET
	opens_at = EXCLUDED.opens_at,
	closes_at = EXCLUDED.closes_at,
	is_closed = EXCLUDED.is_closed,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`

// Upsert writes one row per weekday, replacing any existing entry for the
// same (venue, day).
func (repo *repositoryImpl) Upsert(ctx context.Context, models []model.VenueHours) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".venue_hours.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertQuery)

	_, err := repo.db.Write.NamedExecContext(ctx, upsertQuery, models)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert venue hours: %w", err)
	}

	return nil
}
