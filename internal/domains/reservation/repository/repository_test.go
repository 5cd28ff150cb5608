package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"rackcity/infras/otel/mocks"
	"rackcity/infras/postgres"
	"rackcity/internal/domains/reservation/model"
	"rackcity/internal/domains/reservation/repository"
	"rackcity/shared/failure"
)

const (
	lockPattern      = `SELECT id FROM venues WHERE id = \$1 FOR UPDATE`
	overlapPattern   = `SELECT count\(\*\) FROM reservations`
	freeTablePattern = `SELECT pt\.id FROM pool_tables`
	insertPattern    = `INSERT INTO reservations`
)

func newReservationRepo(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	return repository.New(conn, mocks.NewOtel()), mock
}

func bookingWindow() (time.Time, time.Time) {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	return start, start.Add(90 * time.Minute)
}

func TestReservationRepository_InsertWithCapacity(t *testing.T) {
	venueID := "4e8bd1f3-2f68-4f66-a454-6a8c0a6a3a01"
	start, end := bookingWindow()

	booking := func(tableType string, anyTable bool) *model.Reservation {
		return &model.Reservation{
			ID:        "8a1f4cc0-93f0-4df3-9ad8-31c1a3b1f402",
			VenueID:   venueID,
			UserID:    "user-1",
			StartTime: start,
			EndTime:   end,
			PartySize: 4,
			Status:    model.StatusConfirmed,
			TableType: tableType,
			AnyTable:  anyTable,
		}
	}

	t.Run("books while capacity remains", func(t *testing.T) {
		repo, mock := newReservationRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPattern).
			WithArgs(venueID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(venueID))
		mock.ExpectQuery(overlapPattern).
			WithArgs(venueID, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(insertPattern).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.InsertWithCapacity(context.Background(), booking("", true), 2)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflicts when the window is full", func(t *testing.T) {
		repo, mock := newReservationRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPattern).
			WithArgs(venueID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(venueID))
		mock.ExpectQuery(overlapPattern).
			WithArgs(venueID, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectRollback()

		err := repo.InsertWithCapacity(context.Background(), booking("", true), 2)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pins a free table of the requested type", func(t *testing.T) {
		repo, mock := newReservationRepo(t)
		res := booking("snooker", false)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPattern).
			WithArgs(venueID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(venueID))
		mock.ExpectQuery(overlapPattern).
			WithArgs(venueID, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(freeTablePattern).
			WithArgs(venueID, "snooker", end, start).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("table-7"))
		mock.ExpectExec(insertPattern).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.InsertWithCapacity(context.Background(), res, 3)

		assert.NoError(t, err)
		assert.NotNil(t, res.TableID)
		assert.Equal(t, "table-7", *res.TableID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflicts when the requested type is exhausted", func(t *testing.T) {
		repo, mock := newReservationRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPattern).
			WithArgs(venueID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(venueID))
		mock.ExpectQuery(overlapPattern).
			WithArgs(venueID, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(freeTablePattern).
			WithArgs(venueID, "snooker", end, start).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.InsertWithCapacity(context.Background(), booking("snooker", false), 3)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("untyped booking proceeds unpinned when no table row is free", func(t *testing.T) {
		repo, mock := newReservationRepo(t)
		res := booking("", false)

		mock.ExpectBegin()
		mock.ExpectQuery(lockPattern).
			WithArgs(venueID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(venueID))
		mock.ExpectQuery(overlapPattern).
			WithArgs(venueID, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(freeTablePattern).
			WithArgs(venueID, "", end, start).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(insertPattern).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.InsertWithCapacity(context.Background(), res, 3)

		assert.NoError(t, err)
		assert.Nil(t, res.TableID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
