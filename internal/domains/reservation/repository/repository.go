package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/reservation/model"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	"rackcity/shared/failure"
	"rackcity/shared/logger"
	gRepo "rackcity/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	InsertWithCapacity(ctx context.Context, res *model.Reservation, capacity int) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// lockVenueQuery serializes concurrent bookings for the same venue so the
// capacity re-check and the insert are atomic with respect to each other.
const lockVenueQuery = `SELECT id FROM venues WHERE id = $1 FOR UPDATE`

const overlapCountQuery = `
SELECT count(*) FROM reservations
WHERE venue_id = $1
  AND status IN ('pending', 'confirmed')
  AND start_time < $2
  AND end_time > $3`

// freeTableQuery picks the first table of the venue (optionally narrowed to a
// type) with no overlapping active reservation in the requested window.
const freeTableQuery = `
SELECT pt.id FROM pool_tables pt
WHERE pt.venue_id = $1
  AND pt.is_available = TRUE
  AND ($2 = '' OR pt.table_type = $2)
  AND NOT EXISTS (
    SELECT 1 FROM reservations r
    WHERE r.table_id = pt.id
      AND r.status IN ('pending', 'confirmed')
      AND r.start_time < $3
      AND r.end_time > $4)
ORDER BY pt.display_order, pt.id
LIMIT 1`

// InsertWithCapacity re-validates capacity inside the same transaction as
// the insert, resolves the pinned table there when one was requested, and
// aborts with a conflict when the interval is already full. Two concurrent
// attempts at the last free table resolve to one success and one conflict.
func (repo *repositoryImpl) InsertWithCapacity(ctx context.Context, res *model.Reservation, capacity int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertWithCapacity")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lockedID string
	if err = tx.GetContext(ctx, &lockedID, lockVenueQuery, res.VenueID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock venue for booking: %w", err)
	}

	var overlapping int
	if err = tx.GetContext(ctx, &overlapping, overlapCountQuery, res.VenueID, res.EndTime, res.StartTime); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to count overlapping reservations: %w", err)
	}

	if overlapping >= capacity {
		err = failure.Conflict("slot no longer available")

		return err
	}

	// A specific type request (or an "any table" opt-out) gets a concrete
	// table resolved here, under the same venue lock as the insert, so two
	// concurrent bookings can never pin the same table for the same window.
	if res.TableType != "" || !res.AnyTable {
		var tableID string

		err = tx.GetContext(ctx, &tableID, freeTableQuery, res.VenueID, res.TableType, res.EndTime, res.StartTime)

		switch {
		case errors.Is(err, sql.ErrNoRows) && res.TableType != "":
			err = failure.Conflict("no " + res.TableType + " table available for this time")

			return err
		case errors.Is(err, sql.ErrNoRows):
			// Capacity already cleared the window; proceed without a pin
			// and let staff assign a table on arrival.
			err = nil
			res.TableID = nil
		case err != nil:
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to resolve a free table: %w", err)
		default:
			res.TableID = &tableID
		}
	}

	if err = repo.InsertTx(ctx, tx, *res); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}
