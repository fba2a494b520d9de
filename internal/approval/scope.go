package approval

import (
	"context"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
)

// ReportsResolver answers whether an employee is a direct or indirect
// report of a manager. The org directory is an external collaborator,
// the workflow only needs this boolean.
//
//go:generate mockgen -source=scope.go -destination=mock/scope_mock.go -package=mock
type ReportsResolver interface {
	IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error)
}

// ReviewableRequest is the common surface of every request kind that
// flows through review. Leave requests and timesheets stay distinct
// entity types; authorization only cares about this slice of them.
type ReviewableRequest interface {
	OwnerID() string
	OwnerDepartment() string
	CurrentStatus() string
}

// Scope decides whether a reviewer may act on a request. It has no
// side effects; callers translate a false result into a FORBIDDEN
// error.
type Scope struct {
	reports ReportsResolver
}

func NewScope(reports ReportsResolver) *Scope {
	return &Scope{reports: reports}
}

// CanReview evaluates the rules in order: admin reviews anything,
// managers review their (transitive) reports, dept leads review their
// own department. Everyone else, and owners of the request itself, are
// denied.
func (s *Scope) CanReview(ctx context.Context, reviewer domain.Reviewer, req ReviewableRequest) (bool, error) {
	caps := reviewer.Role.Capabilities()

	if caps.ApproveAny {
		return true, nil
	}

	// Only roles carrying ApproveOwn (admins) may decide their own
	// requests.
	if reviewer.ID == req.OwnerID() {
		return caps.ApproveOwn, nil
	}

	if caps.ApproveReports {
		return s.reports.IsManagerOf(ctx, reviewer.ID, req.OwnerID())
	}

	if caps.ApproveDepartment {
		return reviewer.DepartmentID != "" && reviewer.DepartmentID == req.OwnerDepartment(), nil
	}

	return false, nil
}
