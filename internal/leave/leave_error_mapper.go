package leave

import (
	"errors"

	leaveerrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver-level failures into domain
// errors. The exclusion constraint on (employee_id, daterange) backs
// the overlap rule at the database level.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23P01":
			return leaveerrors.ErrLeaveOverlap
		}
	}

	return err
}
