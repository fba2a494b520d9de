package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows listing to the caller's visibility. Zero values
// mean no restriction on that field.
type ListFilter struct {
	EmployeeID string
	Department string
	Status     string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	DecideIf(ctx context.Context, l *LeaveRequest, expectedStatus string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Department != "" {
		db = db.Where("employee_department = ?", filter.Department)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var requests []LeaveRequest
	err := db.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// DecideIf is the compare-and-swap that makes decisions race-safe: the
// review fields are written in a single conditional UPDATE that only
// applies while the request still carries expectedStatus. A false
// return means a concurrent reviewer won the race.
func (r *repository) DecideIf(ctx context.Context, l *LeaveRequest, expectedStatus string) (bool, error) {
	const query = `
		UPDATE leave_requests
		SET status = $2,
			reviewed_by = $3,
			reviewed_at = $4,
			comments = $5,
			balance_before = $6,
			balance_after = $7,
			updated_at = now()
		WHERE id = $1 AND status = $8
	`

	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, query,
		l.ID, l.Status, l.ReviewedBy, l.ReviewedAt, l.Comments,
		l.BalanceBefore, l.BalanceAfter, expectedStatus,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
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
