package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/review/model"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/logger"
	gRepo "rackcity/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Aggregate(ctx context.Context, venueID string) (model.Aggregate, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const aggregateQuery = `
SELECT COALESCE(ROUND(AVG(rating_overall), 2), 0) AS rating, COUNT(*) AS review_count
FROM reviews
WHERE venue_id = $1`

// Aggregate computes the venue's average overall rating and review count.
func (repo *repositoryImpl) Aggregate(ctx context.Context, venueID string) (res model.Aggregate, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Aggregate")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, aggregateQuery)

	if err = repo.db.Read.GetContext(ctx, &res, aggregateQuery, venueID); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	return res, nil
}
