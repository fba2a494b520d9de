package timesheet_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/approval"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/audit"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/messaging/kafka"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/timesheet"
	timesheeterrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/timesheet/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTimesheetRepository struct {
	withTxFn   func(tx *sql.Tx) timesheet.Repository
	createFn   func(ctx context.Context, t *timesheet.Timesheet) error
	findAllFn  func(ctx context.Context, filter timesheet.ListFilter) ([]timesheet.Timesheet, error)
	findByIDFn func(ctx context.Context, id string) (*timesheet.Timesheet, error)
	submitIfFn func(ctx context.Context, id string, expectedStatus string) (bool, error)
	decideIfFn func(ctx context.Context, t *timesheet.Timesheet, expectedStatus string) (bool, error)
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimesheetRepository) Create(ctx context.Context, t *timesheet.Timesheet) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindAll(ctx context.Context, filter timesheet.ListFilter) ([]timesheet.Timesheet, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindByID(ctx context.Context, id string) (*timesheet.Timesheet, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) SubmitIf(ctx context.Context, id string, expectedStatus string) (bool, error) {
	if f.submitIfFn != nil {
		return f.submitIfFn(ctx, id, expectedStatus)
	}
	return true, nil
}

func (f *fakeTimesheetRepository) DecideIf(ctx context.Context, t *timesheet.Timesheet, expectedStatus string) (bool, error) {
	if f.decideIfFn != nil {
		return f.decideIfFn(ctx, t, expectedStatus)
	}
	return true, nil
}

type fakeAuditRepository struct {
	appendFn func(ctx context.Context, e *audit.Entry) error
}

func (f *fakeAuditRepository) WithTx(tx *sql.Tx) audit.Repository {
	return f
}

func (f *fakeAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	if f.appendFn != nil {
		return f.appendFn(ctx, e)
	}
	return nil
}

func (f *fakeAuditRepository) ListByRequest(ctx context.Context, requestID string) ([]audit.Entry, error) {
	return nil, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeScope struct {
	canReviewFn func(ctx context.Context, reviewer domain.Reviewer, req approval.ReviewableRequest) (bool, error)
}

func (f *fakeScope) CanReview(ctx context.Context, reviewer domain.Reviewer, req approval.ReviewableRequest) (bool, error) {
	if f.canReviewFn != nil {
		return f.canReviewFn(ctx, reviewer, req)
	}
	return true, nil
}

type timesheetServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    timesheet.Service
	repo       *fakeTimesheetRepository
	auditRepo  *fakeAuditRepository
	outboxRepo *fakeOutboxRepository
	scope      *fakeScope
}

func setupTimesheetServiceTest(t *testing.T) *timesheetServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &timesheetServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       &fakeTimesheetRepository{},
		auditRepo:  &fakeAuditRepository{},
		outboxRepo: &fakeOutboxRepository{},
		scope:      &fakeScope{},
	}
	deps.service = timesheet.NewService(db, deps.repo, deps.auditRepo, deps.outboxRepo, deps.scope)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func sheetIn(owner uuid.UUID, status string) *timesheet.Timesheet {
	return &timesheet.Timesheet{
		ID:            uuid.New(),
		EmployeeID:    owner,
		Department:    "Engineering",
		Role:          string(domain.RoleEmployee),
		WorkDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ClockIn:       time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		ClockOut:      time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
		Hours:         9,
		RegularHours:  8,
		OvertimeHours: 1,
		Status:        status,
	}
}

func TestTimesheetService_Create(t *testing.T) {
	ctx := context.Background()
	actor := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleEmployee, DepartmentID: "Engineering"}

	t.Run("splits hours at the regular cap", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, ts *timesheet.Timesheet) error {
			assert.Equal(t, timesheet.StatusDraft, ts.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, actor, timesheet.CreateTimesheetRequest{
			WorkDate: "2026-03-02",
			ClockIn:  "2026-03-02T09:00:00Z",
			ClockOut: "2026-03-02T19:30:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, 10.5, resp.Hours)
		assert.Equal(t, 8.0, resp.RegularHours)
		assert.Equal(t, 2.5, resp.OvertimeHours)
	})

	t.Run("short day is all regular", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.Create(ctx, actor, timesheet.CreateTimesheetRequest{
			WorkDate: "2026-03-02",
			ClockIn:  "2026-03-02T09:00:00Z",
			ClockOut: "2026-03-02T15:00:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, 6.0, resp.RegularHours)
		assert.Equal(t, 0.0, resp.OvertimeHours)
	})

	t.Run("clock out before clock in rejected", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, timesheet.CreateTimesheetRequest{
			WorkDate: "2026-03-02",
			ClockIn:  "2026-03-02T18:00:00Z",
			ClockOut: "2026-03-02T09:00:00Z",
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidClockRange)
	})
}

func TestTimesheetService_Submit(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := domain.Reviewer{ID: ownerID.String(), Role: domain.RoleEmployee, DepartmentID: "Engineering"}

	t.Run("owner submits a draft", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}

		resp, err := deps.service.Submit(ctx, owner, ts.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, resp.Status)
	})

	t.Run("non-owner may not submit", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(uuid.New(), timesheet.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}

		_, err := deps.service.Submit(ctx, owner, ts.ID.String())

		assert.ErrorIs(t, err, timesheeterrors.ErrSubmitNotAllowed)
	})

	t.Run("only drafts are submittable", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}

		_, err := deps.service.Submit(ctx, owner, ts.ID.String())

		assert.ErrorIs(t, err, timesheeterrors.ErrNotDraft)
	})
}

func TestTimesheetService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	reviewer := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleManager}

	t.Run("success writes audit entry and outbox event", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}

		var audited *audit.Entry
		deps.auditRepo.appendFn = func(ctx context.Context, e *audit.Entry) error {
			audited = e
			return nil
		}
		var published *kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = &event
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Approve(ctx, reviewer, ts.ID.String(), "looks right")

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, reviewer.ID, *resp.ReviewedBy)

		assert.NotNil(t, audited)
		assert.Equal(t, audit.KindTimesheet, audited.RequestKind)
		assert.Equal(t, timesheet.StatusSubmitted, audited.PreviousStatus)
		assert.Equal(t, timesheet.StatusApproved, audited.NewStatus)

		assert.NotNil(t, published)
		assert.Equal(t, ts.ID.String(), published.AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("draft cannot be decided", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusDraft)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}

		_, err := deps.service.Approve(ctx, reviewer, ts.ID.String(), "")

		assert.ErrorIs(t, err, timesheeterrors.ErrNotSubmitted)
	})

	t.Run("lost review race rolls back", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}
		deps.repo.decideIfFn = func(ctx context.Context, ts *timesheet.Timesheet, expectedStatus string) (bool, error) {
			return false, nil
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Approve(ctx, reviewer, ts.ID.String(), "")

		assert.ErrorIs(t, err, timesheeterrors.ErrReviewConflict)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("out of scope reviewer is denied", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		defer deps.db.Close()

		ts := sheetIn(ownerID, timesheet.StatusSubmitted)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
			return ts, nil
		}
		deps.scope.canReviewFn = func(ctx context.Context, r domain.Reviewer, target approval.ReviewableRequest) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, reviewer, ts.ID.String(), "")

		assert.ErrorIs(t, err, timesheeterrors.ErrReviewNotAllowed)
	})
}

func TestTimesheetService_Reject_RequiresReason(t *testing.T) {
	ctx := context.Background()
	reviewer := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleAdmin}

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Reject(ctx, reviewer, uuid.New().String(), "")

	assert.ErrorIs(t, err, timesheeterrors.ErrRejectionReasonRequired)
}

func TestTimesheetService_BulkReject_PartialFailure(t *testing.T) {
	ctx := context.Background()
	reviewer := domain.Reviewer{ID: uuid.New().String(), Role: domain.RoleAdmin}

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	good := uuid.New()
	draft := uuid.New()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*timesheet.Timesheet, error) {
		status := timesheet.StatusSubmitted
		if id == draft.String() {
			status = timesheet.StatusDraft
		}
		ts := sheetIn(uuid.New(), status)
		ts.ID = uuid.MustParse(id)
		return ts, nil
	}

	expectTx(t, deps.sqlMock, true)
	result, err := deps.service.BulkReject(ctx, reviewer, []string{good.String(), draft.String()}, "hours do not match badge data")

	assert.NoError(t, err)
	assert.Equal(t, []string{good.String()}, result.Succeeded)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, draft.String(), result.Failed[0].ID)
	assert.Equal(t, apperror.CodeInvalidState, result.Failed[0].Code)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimesheetService_Bulk_MissingReviewer(t *testing.T) {
	ctx := context.Background()

	deps := setupTimesheetServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.BulkApprove(ctx, domain.Reviewer{}, []string{uuid.New().String()}, "")
	assert.ErrorIs(t, err, timesheeterrors.ErrInvalidReviewerID)

	_, err = deps.service.BulkReject(ctx, domain.Reviewer{}, []string{uuid.New().String()}, "because")
	assert.ErrorIs(t, err, timesheeterrors.ErrInvalidReviewerID)
}
