package ledger_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger"
	ledgererrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLedgerRepository struct {
	balancesFn  func(ctx context.Context, employeeID string) (map[string]int, error)
	provisionFn func(ctx context.Context, b *ledger.LeaveBalance) error
	calls       int
}

func (f *fakeLedgerRepository) WithTx(tx *sql.Tx) ledger.Repository {
	return f
}

func (f *fakeLedgerRepository) Balances(ctx context.Context, employeeID string) (map[string]int, error) {
	f.calls++
	if f.balancesFn != nil {
		return f.balancesFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLedgerRepository) Deduct(ctx context.Context, employeeID, leaveType string, days int, floored bool) (int, error) {
	return 0, nil
}

func (f *fakeLedgerRepository) Provision(ctx context.Context, b *ledger.LeaveBalance) error {
	if f.provisionFn != nil {
		return f.provisionFn(ctx, b)
	}
	return nil
}

func TestLedgerService_Balances(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every balance cell", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			balancesFn: func(ctx context.Context, employeeID string) (map[string]int, error) {
				return map[string]int{"ANNUAL": 10, "SICK": 5}, nil
			},
		}
		svc := ledger.NewService(repo)

		employeeID := uuid.New().String()
		resp, err := svc.Balances(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 10, resp.Balances["ANNUAL"])
		assert.Equal(t, 5, resp.Balances["SICK"])
	})

	t.Run("invalid employee id rejected", func(t *testing.T) {
		svc := ledger.NewService(&fakeLedgerRepository{})

		_, err := svc.Balances(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidEmployeeID)
	})

	t.Run("unknown employee reported as not found", func(t *testing.T) {
		svc := ledger.NewService(&fakeLedgerRepository{
			balancesFn: func(ctx context.Context, employeeID string) (map[string]int, error) {
				return map[string]int{}, nil
			},
		})

		_, err := svc.Balances(ctx, uuid.New().String())

		assert.ErrorIs(t, err, ledgererrors.ErrBalanceNotFound)
	})
}

func TestLedgerService_Provision(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("sets the cell to an absolute value", func(t *testing.T) {
		repo := &fakeLedgerRepository{
			provisionFn: func(ctx context.Context, b *ledger.LeaveBalance) error {
				assert.Equal(t, employeeID, b.EmployeeID)
				assert.Equal(t, "ANNUAL", b.LeaveType)
				assert.Equal(t, 12, b.Days)
				return nil
			},
		}
		svc := ledger.NewService(repo)

		resp, err := svc.Provision(ctx, employeeID.String(), "ANNUAL", 12)

		assert.NoError(t, err)
		assert.Equal(t, 12, resp.Days)
	})

	t.Run("unknown leave type rejected", func(t *testing.T) {
		svc := ledger.NewService(&fakeLedgerRepository{})

		_, err := svc.Provision(ctx, employeeID.String(), "SABBATICAL", 12)

		assert.ErrorIs(t, err, ledgererrors.ErrInvalidLeaveType)
	})

	t.Run("negative days rejected", func(t *testing.T) {
		svc := ledger.NewService(&fakeLedgerRepository{})

		_, err := svc.Provision(ctx, employeeID.String(), "ANNUAL", -1)

		assert.ErrorIs(t, err, ledgererrors.ErrNegativeProvision)
	})
}
