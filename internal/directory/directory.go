package directory

import (
	"context"

	"gorm.io/gorm"
)

// Resolver reads the manager->report relationships maintained by the
// employee directory. This subsystem never writes to it.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// IsManagerOf walks the reporting chain upward from employeeID and
// reports whether managerID appears in it. Depth is capped to guard
// against cyclic directory data.
func (r *Resolver) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	if managerID == "" || employeeID == "" || managerID == employeeID {
		return false, nil
	}

	var found bool
	err := r.db.WithContext(ctx).Raw(`
		WITH RECURSIVE chain AS (
			SELECT id, manager_id, 1 AS depth
			FROM employees
			WHERE id = ?
			UNION ALL
			SELECT e.id, e.manager_id, c.depth + 1
			FROM employees e
			JOIN chain c ON e.id = c.manager_id
			WHERE c.depth < 10
		)
		SELECT EXISTS (SELECT 1 FROM chain WHERE manager_id = ?)
	`, employeeID, managerID).Scan(&found).Error

	if err != nil {
		return false, err
	}
	return found, nil
}
