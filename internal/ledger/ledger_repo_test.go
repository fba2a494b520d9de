package ledger_test

import (
	"context"
	"testing"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger"
	ledgererrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRepository_Deduct(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("floored deduct returns remaining days", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE leave_balances").
			WithArgs(employeeID, "ANNUAL", 3).
			WillReturnRows(sqlmock.NewRows([]string{"days"}).AddRow(7))

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil).WithTx(tx)
		remaining, err := repo.Deduct(ctx, employeeID, "ANNUAL", 3, true)

		assert.NoError(t, err)
		assert.Equal(t, 7, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("floored deduct past zero reports insufficient balance", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE leave_balances").
			WithArgs(employeeID, "SICK", 3).
			WillReturnRows(sqlmock.NewRows([]string{"days"}))

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil).WithTx(tx)
		_, err = repo.Deduct(ctx, employeeID, "SICK", 3, true)

		assert.ErrorIs(t, err, ledgererrors.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unpaid deduct may go negative", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO leave_balances").
			WithArgs(employeeID, "UNPAID", 5).
			WillReturnRows(sqlmock.NewRows([]string{"days"}).AddRow(-5))

		tx, err := db.Begin()
		assert.NoError(t, err)

		repo := ledger.NewRepository(nil).WithTx(tx)
		remaining, err := repo.Deduct(ctx, employeeID, "UNPAID", 5, false)

		assert.NoError(t, err)
		assert.Equal(t, -5, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_Balances(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT leave_type, days FROM leave_balances").
		WithArgs(employeeID).
		WillReturnRows(sqlmock.NewRows([]string{"leave_type", "days"}).
			AddRow("ANNUAL", 10).
			AddRow("SICK", 5))

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := ledger.NewRepository(nil).WithTx(tx)
	balances, err := repo.Balances(ctx, employeeID)

	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"ANNUAL": 10, "SICK": 5}, balances)
	assert.NoError(t, mock.ExpectationsWereMet())
}
