package timesheet

import (
	"errors"

	timesheeterrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/timesheet/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver-level failures into domain
// errors. The unique index on (employee_id, work_date) backs the
// one-sheet-per-day rule at the database level.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timesheeterrors.ErrTimesheetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return timesheeterrors.ErrDuplicateTimesheet
		}
	}

	return err
}
