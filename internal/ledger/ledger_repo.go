package ledger

import (
	"context"
	"database/sql"
	"errors"

	ledgererrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger/errors"

	"gorm.io/gorm"
)

// Repository is the only mutation path for employee leave balances.
// Deduct is a single atomic conditional write, never a read-then-write
// in application code, so concurrent approvals for the same employee
// cannot lose updates.
//
//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Balances(ctx context.Context, employeeID string) (map[string]int, error)
	Deduct(ctx context.Context, employeeID, leaveType string, days int, floored bool) (int, error)
	Provision(ctx context.Context, b *LeaveBalance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Balances(ctx context.Context, employeeID string) (map[string]int, error) {
	const query = `SELECT leave_type, days FROM leave_balances WHERE employee_id = $1`

	q, err := r.querier()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[string]int)
	for rows.Next() {
		var leaveType string
		var days int
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		balances[leaveType] = days
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// Deduct decrements one balance cell and returns the remaining days.
// For floored leave types the guard lives in the statement itself: the
// update only applies while it cannot push the balance negative, and a
// zero-row result is reported as insufficient balance. UNPAID has no
// floor and is upserted so it may go arbitrarily negative.
func (r *repository) Deduct(ctx context.Context, employeeID, leaveType string, days int, floored bool) (int, error) {
	const flooredQuery = `
		UPDATE leave_balances
		SET days = days - $3, updated_at = now()
		WHERE employee_id = $1 AND leave_type = $2 AND days >= $3
		RETURNING days
	`
	const unflooredQuery = `
		INSERT INTO leave_balances (employee_id, leave_type, days, updated_at)
		VALUES ($1, $2, -$3, now())
		ON CONFLICT (employee_id, leave_type) DO UPDATE
		SET days = leave_balances.days - $3, updated_at = now()
		RETURNING days
	`

	query := unflooredQuery
	if floored {
		query = flooredQuery
	}

	q, err := r.querier()
	if err != nil {
		return 0, err
	}

	var remaining int
	err = q.QueryRowContext(ctx, query, employeeID, leaveType, days).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ledgererrors.ErrInsufficientBalance
	}
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

// Provision sets one balance cell to an absolute value, creating the
// row if the employee has none for that type yet.
func (r *repository) Provision(ctx context.Context, b *LeaveBalance) error {
	const query = `
		INSERT INTO leave_balances (employee_id, leave_type, days, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (employee_id, leave_type) DO UPDATE
		SET days = EXCLUDED.days, updated_at = now()
	`

	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, query, b.EmployeeID, b.LeaveType, b.Days)
	return err
}

type querierIface interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) querier() (querierIface, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}

type execerIface interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() (execerIface, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}
