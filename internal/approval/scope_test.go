package approval_test

import (
	"context"
	"testing"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/approval"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReportsResolver struct {
	isManagerOfFn func(ctx context.Context, managerID, employeeID string) (bool, error)
}

func (f *fakeReportsResolver) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	if f.isManagerOfFn != nil {
		return f.isManagerOfFn(ctx, managerID, employeeID)
	}
	return false, nil
}

type stubRequest struct {
	ownerID    string
	department string
	status     string
}

func (r stubRequest) OwnerID() string         { return r.ownerID }
func (r stubRequest) OwnerDepartment() string { return r.department }
func (r stubRequest) CurrentStatus() string   { return r.status }

func TestScope_CanReview(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	engineering := stubRequest{ownerID: ownerID, department: "Engineering", status: "PENDING"}

	t.Run("admin reviews anything, including own requests", func(t *testing.T) {
		scope := approval.NewScope(&fakeReportsResolver{})
		admin := domain.Reviewer{ID: ownerID, Role: domain.RoleAdmin}

		ok, err := scope.CanReview(ctx, admin, engineering)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("manager reviews direct reports only", func(t *testing.T) {
		managerID := uuid.New().String()
		resolver := &fakeReportsResolver{
			isManagerOfFn: func(ctx context.Context, mid, eid string) (bool, error) {
				return mid == managerID && eid == ownerID, nil
			},
		}
		scope := approval.NewScope(resolver)

		ok, err := scope.CanReview(ctx, domain.Reviewer{ID: managerID, Role: domain.RoleManager}, engineering)
		assert.NoError(t, err)
		assert.True(t, ok)

		stranger := uuid.New().String()
		ok, err = scope.CanReview(ctx, domain.Reviewer{ID: stranger, Role: domain.RoleManager}, engineering)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("dept lead bound to own department", func(t *testing.T) {
		scope := approval.NewScope(&fakeReportsResolver{})
		lead := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleDeptLead, DepartmentID: "Engineering"}

		ok, err := scope.CanReview(ctx, lead, engineering)
		assert.NoError(t, err)
		assert.True(t, ok)

		sales := stubRequest{ownerID: ownerID, department: "Sales", status: "PENDING"}
		ok, err = scope.CanReview(ctx, lead, sales)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("dept lead without department reviews nothing", func(t *testing.T) {
		scope := approval.NewScope(&fakeReportsResolver{})
		lead := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleDeptLead}

		ok, err := scope.CanReview(ctx, lead, stubRequest{ownerID: ownerID})

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-admin self-review denied", func(t *testing.T) {
		scope := approval.NewScope(&fakeReportsResolver{
			isManagerOfFn: func(ctx context.Context, mid, eid string) (bool, error) {
				return true, nil
			},
		})

		for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleDeptLead, domain.RoleManager} {
			ok, err := scope.CanReview(ctx, domain.Reviewer{ID: ownerID, Role: role, DepartmentID: "Engineering"}, engineering)
			assert.NoError(t, err)
			assert.False(t, ok, "role %s must not self-review", role)
		}
	})

	t.Run("plain employee reviews nothing", func(t *testing.T) {
		scope := approval.NewScope(&fakeReportsResolver{})
		emp := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleEmployee, DepartmentID: "Engineering"}

		ok, err := scope.CanReview(ctx, emp, engineering)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
