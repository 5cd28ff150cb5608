package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/pooltable/model"
	gDto "rackcity/shared/dto"
	gRepo "rackcity/shared/repository"
)

type PoolTable interface {
	Insert(ctx context.Context, model model.PoolTable) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PoolTable, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PoolTable, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PoolTable]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PoolTable {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PoolTable](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
