package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/approval"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/leave"
	leaveerrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn      func(ctx context.Context, actor domain.Reviewer, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	getAllFn      func(ctx context.Context, actor domain.Reviewer) ([]leave.LeaveRequestResponse, error)
	getByIDFn     func(ctx context.Context, actor domain.Reviewer, id string) (leave.LeaveRequestResponse, error)
	approveFn     func(ctx context.Context, reviewer domain.Reviewer, id, comment string) (leave.LeaveRequestResponse, error)
	rejectFn      func(ctx context.Context, reviewer domain.Reviewer, id, reason string) (leave.LeaveRequestResponse, error)
	bulkApproveFn func(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error)
	bulkRejectFn  func(ctx context.Context, reviewer domain.Reviewer, ids []string, reason string) (approval.BulkResult, error)
}

func (f *fakeService) Create(ctx context.Context, actor domain.Reviewer, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeService) GetAll(ctx context.Context, actor domain.Reviewer) ([]leave.LeaveRequestResponse, error) {
	return f.getAllFn(ctx, actor)
}

func (f *fakeService) GetByID(ctx context.Context, actor domain.Reviewer, id string) (leave.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}

func (f *fakeService) Approve(ctx context.Context, reviewer domain.Reviewer, id, comment string) (leave.LeaveRequestResponse, error) {
	return f.approveFn(ctx, reviewer, id, comment)
}

func (f *fakeService) Reject(ctx context.Context, reviewer domain.Reviewer, id, reason string) (leave.LeaveRequestResponse, error) {
	return f.rejectFn(ctx, reviewer, id, reason)
}

func (f *fakeService) BulkApprove(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error) {
	return f.bulkApproveFn(ctx, reviewer, ids, comment)
}

func (f *fakeService) BulkReject(ctx context.Context, reviewer domain.Reviewer, ids []string, reason string) (approval.BulkResult, error) {
	return f.bulkRejectFn(ctx, reviewer, ids, reason)
}

func TestHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reviewerID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, reviewer domain.Reviewer, id, comment string) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, reviewerID, reviewer.ID)
				assert.Equal(t, domain.RoleManager, reviewer.Role)
				assert.Equal(t, leaveID, id)
				return leave.LeaveRequestResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", reviewerID)
		c.Set("role", "manager")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/approve", strings.NewReader(`{"comment":"ok"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("review conflict maps to 409", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, reviewer domain.Reviewer, id, comment string) (leave.LeaveRequestResponse, error) {
				return leave.LeaveRequestResponse{}, leaveerrors.ErrReviewConflict
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", reviewerID)
		c.Set("role", "manager")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/"+leaveID+"/approve", nil)

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestHandler_Reject_MissingReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "admin")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/reject", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_BulkApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reviewerID := uuid.New().String()
	good := uuid.New().String()
	bad := uuid.New().String()

	svc := &fakeService{
		bulkApproveFn: func(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error) {
			result := approval.NewBulkResult()
			result.AddSuccess(good)
			result.AddFailure(bad, "NOT_FOUND", "leave request not found")
			return result, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", reviewerID)
	c.Set("role", "admin")
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/bulk-approve",
		strings.NewReader(`{"ids":["`+good+`","`+bad+`"]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.BulkApprove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"succeeded\"")
	assert.Contains(t, w.Body.String(), "\"failed\"")
	assert.Contains(t, w.Body.String(), good)
	assert.Contains(t, w.Body.String(), bad)
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, actor domain.Reviewer) ([]leave.LeaveRequestResponse, error) {
			return []leave.LeaveRequestResponse{
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
				{ID: uuid.New().String()},
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "admin")
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests?page=1&page_size=2", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
}
