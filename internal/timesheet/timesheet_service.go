package timesheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/approval"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/audit"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/events"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/messaging/kafka"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/contextutil"
	timesheeterrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewScope decides whether a reviewer may act on a timesheet. See
// the approval package for the concrete rules.
type ReviewScope interface {
	CanReview(ctx context.Context, reviewer domain.Reviewer, req approval.ReviewableRequest) (bool, error)
}

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Reviewer, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, actor domain.Reviewer) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, actor domain.Reviewer, id string) (TimesheetResponse, error)
	Submit(ctx context.Context, actor domain.Reviewer, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, reviewer domain.Reviewer, id, comment string) (TimesheetResponse, error)
	Reject(ctx context.Context, reviewer domain.Reviewer, id, reason string) (TimesheetResponse, error)
	BulkApprove(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error)
	BulkReject(ctx context.Context, reviewer domain.Reviewer, ids []string, reason string) (approval.BulkResult, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	auditRepo  audit.Repository
	outboxRepo kafka.OutboxRepository
	scope      ReviewScope
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	auditRepo audit.Repository,
	outboxRepo kafka.OutboxRepository,
	scope ReviewScope,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		scope:      scope,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Reviewer, req CreateTimesheetRequest) (TimesheetResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create timesheet",
		zap.String("employee_id", actor.ID),
		zap.String("work_date", req.WorkDate),
	)

	employeeID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidEmployeeID
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidDateFormat
	}
	clockIn, err := time.Parse(time.RFC3339, req.ClockIn)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimeFormat
	}
	clockOut, err := time.Parse(time.RFC3339, req.ClockOut)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimeFormat
	}
	if !clockOut.After(clockIn) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidClockRange
	}

	hours := clockOut.Sub(clockIn).Hours()
	regular := hours
	overtime := 0.0
	if hours > RegularHoursCap {
		regular = RegularHoursCap
		overtime = hours - RegularHoursCap
	}

	t := &Timesheet{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		Department:    actor.DepartmentID,
		Role:          string(actor.Role),
		WorkDate:      workDate,
		ClockIn:       clockIn.UTC(),
		ClockOut:      clockOut.UTC(),
		Hours:         hours,
		RegularHours:  regular,
		OvertimeHours: overtime,
		Status:        StatusDraft,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		log.Error("create timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	log.Info("timesheet created",
		zap.String("timesheet_id", t.ID.String()),
		zap.String("employee_id", actor.ID),
		zap.Float64("hours", hours),
		zap.Float64("overtime_hours", overtime),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Reviewer) ([]TimesheetResponse, error) {
	sheets, err := s.repo.FindAll(ctx, listFilterFor(actor))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(sheets), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Reviewer, id string) (TimesheetResponse, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	if actor.Role == domain.RoleEmployee && t.EmployeeID.String() != actor.ID {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}

	return mapToResponse(*t), nil
}

// Submit moves a draft into review. Only the owner may submit, and the
// transition is a conditional UPDATE so a double submit stays a no-op.
func (s *service) Submit(ctx context.Context, actor domain.Reviewer, id string) (TimesheetResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	t, err := s.load(ctx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if t.EmployeeID.String() != actor.ID {
		return TimesheetResponse{}, timesheeterrors.ErrSubmitNotAllowed
	}
	if t.Status != StatusDraft {
		return TimesheetResponse{}, timesheeterrors.ErrNotDraft
	}

	ok, err := s.repo.SubmitIf(ctx, id, StatusDraft)
	if err != nil {
		log.Error("submit timesheet conditional update failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	if !ok {
		return TimesheetResponse{}, timesheeterrors.ErrNotDraft
	}

	t.Status = StatusSubmitted
	log.Info("timesheet submitted",
		zap.String("timesheet_id", id),
		zap.String("employee_id", actor.ID),
	)
	return mapToResponse(*t), nil
}

// Approve runs validate, authorize, conditional status write, audit
// append and outbox insert in one transaction. Timesheet approvals
// never touch the leave ledger.
func (s *service) Approve(ctx context.Context, reviewer domain.Reviewer, id, comment string) (TimesheetResponse, error) {
	return s.decide(ctx, reviewer, id, StatusApproved, audit.ActionApprove, optionalString(comment))
}

func (s *service) Reject(ctx context.Context, reviewer domain.Reviewer, id, reason string) (TimesheetResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return TimesheetResponse{}, timesheeterrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, reviewer, id, StatusRejected, audit.ActionReject, &reason)
}

// BulkApprove applies Approve to each id independently. Items succeed
// or fail on their own; there is no batch-level rollback.
func (s *service) BulkApprove(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error) {
	if _, err := uuid.Parse(reviewer.ID); err != nil {
		return approval.BulkResult{}, timesheeterrors.ErrInvalidReviewerID
	}
	if len(ids) == 0 {
		return approval.BulkResult{}, timesheeterrors.ErrEmptyIDList
	}

	result := approval.NewBulkResult()
	for _, id := range ids {
		if _, err := s.Approve(ctx, reviewer, id, comment); err != nil {
			result.AddFailure(id, apperror.CodeOf(err), err.Error())
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info("bulk approve finished",
		zap.String("reviewer_id", reviewer.ID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) BulkReject(ctx context.Context, reviewer domain.Reviewer, ids []string, reason string) (approval.BulkResult, error) {
	if _, err := uuid.Parse(reviewer.ID); err != nil {
		return approval.BulkResult{}, timesheeterrors.ErrInvalidReviewerID
	}
	if len(ids) == 0 {
		return approval.BulkResult{}, timesheeterrors.ErrEmptyIDList
	}
	if strings.TrimSpace(reason) == "" {
		return approval.BulkResult{}, timesheeterrors.ErrRejectionReasonRequired
	}

	result := approval.NewBulkResult()
	for _, id := range ids {
		if _, err := s.Reject(ctx, reviewer, id, reason); err != nil {
			result.AddFailure(id, apperror.CodeOf(err), err.Error())
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info("bulk reject finished",
		zap.String("reviewer_id", reviewer.ID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) decide(
	ctx context.Context,
	reviewer domain.Reviewer,
	id, newStatus, action string,
	comment *string,
) (TimesheetResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("timesheet decision requested",
		zap.String("timesheet_id", id),
		zap.String("reviewer_id", reviewer.ID),
		zap.String("action", action),
	)

	t, err := s.authorizeDecision(ctx, reviewer, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	reviewerID, err := uuid.Parse(reviewer.ID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("timesheet decision begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	previousStatus := t.Status
	t.Status = newStatus
	t.ReviewedBy = &reviewerID
	t.ReviewedAt = &now
	t.Comments = comment

	ok, err := s.repo.WithTx(tx).DecideIf(ctx, t, previousStatus)
	if err != nil {
		log.Error("timesheet conditional update failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	if !ok {
		log.Warn("timesheet decision lost review race", zap.String("timesheet_id", id))
		return TimesheetResponse{}, timesheeterrors.ErrReviewConflict
	}

	if err := s.appendDecisionRecords(ctx, tx, t, reviewer, action, previousStatus, comment); err != nil {
		log.Error("timesheet audit/outbox failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("timesheet decision commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	log.Info("timesheet decided",
		zap.String("timesheet_id", id),
		zap.String("reviewer_id", reviewer.ID),
		zap.String("status", newStatus),
	)
	return mapToResponse(*t), nil
}

// authorizeDecision loads the sheet and runs the shared guards of
// approve and reject: existence, reviewer scope, actionable state.
func (s *service) authorizeDecision(ctx context.Context, reviewer domain.Reviewer, id string) (*Timesheet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, timesheeterrors.ErrInvalidTimesheetID
	}

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.scope.CanReview(ctx, reviewer, t)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, timesheeterrors.ErrReviewNotAllowed
	}

	if t.CurrentStatus() != StatusSubmitted {
		return nil, timesheeterrors.ErrNotSubmitted
	}

	return t, nil
}

func (s *service) load(ctx context.Context, id string) (*Timesheet, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheeterrors.ErrTimesheetNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *service) appendDecisionRecords(
	ctx context.Context,
	tx *sql.Tx,
	t *Timesheet,
	reviewer domain.Reviewer,
	action, previousStatus string,
	comment *string,
) error {
	reviewerID, err := uuid.Parse(reviewer.ID)
	if err != nil {
		return timesheeterrors.ErrInvalidReviewerID
	}

	entry := &audit.Entry{
		RequestID:      t.ID,
		RequestKind:    audit.KindTimesheet,
		ActorID:        reviewerID,
		Action:         action,
		PreviousStatus: previousStatus,
		NewStatus:      t.Status,
		Comment:        comment,
	}
	if err := s.auditRepo.WithTx(tx).Append(ctx, entry); err != nil {
		return err
	}

	eventType := events.EventTimesheetApproved
	if action == audit.ActionReject {
		eventType = events.EventTimesheetRejected
	}
	payload, err := json.Marshal(events.ReviewDecidedEvent{
		EventType:      eventType,
		RequestID:      t.ID.String(),
		RequestKind:    audit.KindTimesheet,
		EmployeeID:     t.EmployeeID.String(),
		ReviewerID:     reviewer.ID,
		PreviousStatus: previousStatus,
		NewStatus:      t.Status,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: audit.KindTimesheet,
		AggregateID:   t.ID.String(),
		EventType:     eventType,
		Topic:         events.TimesheetDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func listFilterFor(actor domain.Reviewer) ListFilter {
	caps := actor.Role.Capabilities()
	switch {
	case caps.ApproveAny || caps.ApproveReports:
		return ListFilter{}
	case caps.ApproveDepartment:
		return ListFilter{Department: actor.DepartmentID}
	default:
		return ListFilter{EmployeeID: actor.ID}
	}
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func mapToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:            t.ID.String(),
		EmployeeID:    t.EmployeeID.String(),
		Department:    t.Department,
		Role:          t.Role,
		WorkDate:      t.WorkDate.Format("2006-01-02"),
		ClockIn:       t.ClockIn.Format(time.RFC3339),
		ClockOut:      t.ClockOut.Format(time.RFC3339),
		Hours:         t.Hours,
		RegularHours:  t.RegularHours,
		OvertimeHours: t.OvertimeHours,
		Status:        t.Status,
		Comments:      t.Comments,
	}
	if t.ReviewedBy != nil {
		v := t.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(sheets []Timesheet) []TimesheetResponse {
	resp := make([]TimesheetResponse, len(sheets))
	for i, t := range sheets {
		resp[i] = mapToResponse(t)
	}
	return resp
}
