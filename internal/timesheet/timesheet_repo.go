package timesheet

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListFilter narrows listing to the caller's visibility. Zero values
// mean no restriction on that field.
type ListFilter struct {
	EmployeeID string
	Department string
	Status     string
}

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindAll(ctx context.Context, filter ListFilter) ([]Timesheet, error)
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	SubmitIf(ctx context.Context, id string, expectedStatus string) (bool, error)
	DecideIf(ctx context.Context, t *Timesheet, expectedStatus string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Timesheet, error) {
	db := r.db.WithContext(ctx).Model(&Timesheet{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var sheets []Timesheet
	err := db.Order("work_date DESC").Find(&sheets).Error
	return sheets, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

// SubmitIf flips a draft to SUBMITTED with a conditional UPDATE so a
// double submit cannot fire twice. A false return means the sheet was
// no longer in expectedStatus.
func (r *repository) SubmitIf(ctx context.Context, id string, expectedStatus string) (bool, error) {
	const query = `
		UPDATE timesheets
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`

	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, query, id, StatusSubmitted, expectedStatus)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// DecideIf writes the review outcome in a single conditional UPDATE
// guarded on expectedStatus. A false return means a concurrent
// reviewer won the race.
func (r *repository) DecideIf(ctx context.Context, t *Timesheet, expectedStatus string) (bool, error) {
	const query = `
		UPDATE timesheets
		SET status = $2,
			reviewed_by = $3,
			reviewed_at = $4,
			comments = $5,
			updated_at = now()
		WHERE id = $1 AND status = $6
	`

	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, query,
		t.ID, t.Status, t.ReviewedBy, t.ReviewedAt, t.Comments,
		expectedStatus,
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
