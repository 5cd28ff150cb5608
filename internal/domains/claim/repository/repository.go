package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/claim/model"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/logger"
	gRepo "rackcity/shared/repository"
	"rackcity/shared/timezone"
)

type Claim interface {
	Insert(ctx context.Context, model model.Claim) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Claim, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Claim, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Approve(ctx context.Context, claim model.Claim, reviewer string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Claim]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Claim {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Claim](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const approveClaimQuery = `
UPDATE claims
SET status = $1, reviewed_by = $2, reviewed_at = $3, modified_at = $3, modified_by = $2
WHERE id = $4`

const transferVenueQuery = `
UPDATE venues
SET is_claimed = TRUE, owner_id = $1, modified_at = $2, modified_by = $3
WHERE id = $4`

// Approve marks the claim approved and hands the venue to the claimant in
// one transaction, so a claim is never approved without the ownership
// transfer landing with it.
func (repo *repositoryImpl) Approve(ctx context.Context, claim model.Claim, reviewer string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".claim.Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin claim transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := timezone.Now()

	if _, err = tx.ExecContext(ctx, approveClaimQuery, model.StatusApproved, reviewer, now, claim.ID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to approve claim: %w", err)
	}

	if _, err = tx.ExecContext(ctx, transferVenueQuery, claim.UserID, now, reviewer, claim.VenueID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to transfer venue ownership: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit claim approval: %w", err)
	}

	return nil
}
