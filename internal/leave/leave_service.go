package leave

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
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger"
	leaveerrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/leave/errors"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/messaging/kafka"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"
	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewScope decides whether a reviewer may act on a request. See the
// approval package for the concrete rules.
type ReviewScope interface {
	CanReview(ctx context.Context, reviewer domain.Reviewer, req approval.ReviewableRequest) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Reviewer, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actor domain.Reviewer) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor domain.Reviewer, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, reviewer domain.Reviewer, id, comment string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, reviewer domain.Reviewer, id, reason string) (LeaveRequestResponse, error)
	BulkApprove(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error)
	BulkReject(ctx context.Context, reviewer domain.Reviewer, ids []string, reason string) (approval.BulkResult, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	ledgerRepo ledger.Repository
	auditRepo  audit.Repository
	outboxRepo kafka.OutboxRepository
	scope      ReviewScope
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ledgerRepo ledger.Repository,
	auditRepo audit.Repository,
	outboxRepo kafka.OutboxRepository,
	scope ReviewScope,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		ledgerRepo: ledgerRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		scope:      scope,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Reviewer, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave request",
		zap.String("employee_id", actor.ID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !domain.IsLeaveType(req.LeaveType) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrReasonRequired
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, actor.ID, startDate, endDate)
	if err != nil {
		log.Error("create leave overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		log.Warn("create leave overlap detected", zap.String("employee_id", actor.ID))
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &LeaveRequest{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		EmployeeDepartment: actor.DepartmentID,
		LeaveType:          req.LeaveType,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalDays:          totalDays,
		Reason:             req.Reason,
		Status:             StatusPending,
		SubmittedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	log.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actor.ID),
		zap.Int("total_days", totalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Reviewer) ([]LeaveRequestResponse, error) {
	filter := listFilterFor(actor)
	requests, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Reviewer, id string) (LeaveRequestResponse, error) {
	l, err := s.load(ctx, s.repo, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if actor.Role == domain.RoleEmployee && l.EmployeeID.String() != actor.ID {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveNotFound
	}

	return mapToResponse(*l), nil
}

// Approve runs validate, authorize, ledger deduct, conditional status
// write, audit append and outbox insert in one transaction. The ledger
// floor guard and the status compare-and-swap both live inside single
// SQL statements, so losing either race rolls the whole item back.
func (s *service) Approve(ctx context.Context, reviewer domain.Reviewer, id, comment string) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewer.ID),
	)

	l, err := s.authorizeDecision(ctx, reviewer, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qledger := s.ledgerRepo.WithTx(tx)

	balancesBefore, err := qledger.Balances(ctx, l.EmployeeID.String())
	if err != nil {
		log.Error("approve leave read balances failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	remaining, err := qledger.Deduct(
		ctx,
		l.EmployeeID.String(),
		l.LeaveType,
		l.TotalDays,
		domain.IsBalanceFloored(l.LeaveType),
	)
	if err != nil {
		log.Warn("approve leave deduct failed",
			zap.String("leave_id", id),
			zap.String("leave_type", l.LeaveType),
			zap.Int("total_days", l.TotalDays),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	before := make(BalanceSnapshot, len(balancesBefore)+1)
	for k, v := range balancesBefore {
		before[k] = v
	}
	// The plain read above is not serialized with the guarded deduct; a
	// sibling approval can commit in between. Reconstruct the deducted
	// type's before value from the atomic RETURNING result so the two
	// snapshots always differ by exactly TotalDays.
	before[l.LeaveType] = remaining + l.TotalDays
	after := make(BalanceSnapshot, len(before))
	for k, v := range before {
		after[k] = v
	}
	after[l.LeaveType] = remaining

	reviewerID, err := uuid.Parse(reviewer.ID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidReviewerID
	}
	now := time.Now().UTC()
	previousStatus := l.Status
	l.Status = StatusApproved
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.Comments = optionalString(comment)
	l.BalanceBefore = before
	l.BalanceAfter = after

	ok, err := s.repo.WithTx(tx).DecideIf(ctx, l, previousStatus)
	if err != nil {
		log.Error("approve leave conditional update failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !ok {
		log.Warn("approve leave lost review race", zap.String("leave_id", id))
		return LeaveRequestResponse{}, leaveerrors.ErrReviewConflict
	}

	if err := s.appendDecisionRecords(ctx, tx, l, reviewer, audit.ActionApprove, previousStatus, l.Comments); err != nil {
		log.Error("approve leave audit/outbox failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("approve leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	log.Info("leave request approved",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewer.ID),
		zap.Int("balance_before", before[l.LeaveType]),
		zap.Int("balance_after", after[l.LeaveType]),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, reviewer domain.Reviewer, id, reason string) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewer.ID),
	)

	if strings.TrimSpace(reason) == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	l, err := s.authorizeDecision(ctx, reviewer, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	reviewerID, err := uuid.Parse(reviewer.ID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	previousStatus := l.Status
	l.Status = StatusRejected
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.Comments = &reason
	// Rejections never touch the ledger, so no snapshots either.
	l.BalanceBefore = nil
	l.BalanceAfter = nil

	ok, err := s.repo.WithTx(tx).DecideIf(ctx, l, previousStatus)
	if err != nil {
		log.Error("reject leave conditional update failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !ok {
		log.Warn("reject leave lost review race", zap.String("leave_id", id))
		return LeaveRequestResponse{}, leaveerrors.ErrReviewConflict
	}

	if err := s.appendDecisionRecords(ctx, tx, l, reviewer, audit.ActionReject, previousStatus, &reason); err != nil {
		log.Error("reject leave audit/outbox failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("reject leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	log.Info("leave request rejected",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewer.ID),
	)
	return mapToResponse(*l), nil
}

// BulkApprove applies Approve to each id independently. Items succeed
// or fail on their own; there is no batch-level rollback.
func (s *service) BulkApprove(ctx context.Context, reviewer domain.Reviewer, ids []string, comment string) (approval.BulkResult, error) {
	if _, err := uuid.Parse(reviewer.ID); err != nil {
		return approval.BulkResult{}, leaveerrors.ErrInvalidReviewerID
	}
	if len(ids) == 0 {
		return approval.BulkResult{}, leaveerrors.ErrEmptyIDList
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
		return approval.BulkResult{}, leaveerrors.ErrInvalidReviewerID
	}
	if len(ids) == 0 {
		return approval.BulkResult{}, leaveerrors.ErrEmptyIDList
	}
	if strings.TrimSpace(reason) == "" {
		return approval.BulkResult{}, leaveerrors.ErrRejectionReasonRequired
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

// authorizeDecision loads the request and runs the shared guards of
// approve and reject: existence, reviewer scope, actionable state.
func (s *service) authorizeDecision(ctx context.Context, reviewer domain.Reviewer, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.scope.CanReview(ctx, reviewer, l)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, leaveerrors.ErrReviewNotAllowed
	}

	if l.CurrentStatus() != StatusPending {
		return nil, leaveerrors.ErrAlreadyProcessed
	}

	return l, nil
}

func (s *service) load(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) appendDecisionRecords(
	ctx context.Context,
	tx *sql.Tx,
	l *LeaveRequest,
	reviewer domain.Reviewer,
	action, previousStatus string,
	comment *string,
) error {
	reviewerID, err := uuid.Parse(reviewer.ID)
	if err != nil {
		return leaveerrors.ErrInvalidReviewerID
	}

	entry := &audit.Entry{
		RequestID:      l.ID,
		RequestKind:    audit.KindLeave,
		ActorID:        reviewerID,
		Action:         action,
		PreviousStatus: previousStatus,
		NewStatus:      l.Status,
		Comment:        comment,
	}
	if err := s.auditRepo.WithTx(tx).Append(ctx, entry); err != nil {
		return err
	}

	eventType := events.EventLeaveApproved
	if action == audit.ActionReject {
		eventType = events.EventLeaveRejected
	}
	payload, err := json.Marshal(events.ReviewDecidedEvent{
		EventType:      eventType,
		RequestID:      l.ID.String(),
		RequestKind:    audit.KindLeave,
		EmployeeID:     l.EmployeeID.String(),
		ReviewerID:     reviewer.ID,
		PreviousStatus: previousStatus,
		NewStatus:      l.Status,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: audit.KindLeave,
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecisionTopic,
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

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                 l.ID.String(),
		EmployeeID:         l.EmployeeID.String(),
		EmployeeDepartment: l.EmployeeDepartment,
		LeaveType:          l.LeaveType,
		StartDate:          l.StartDate.Format("2006-01-02"),
		EndDate:            l.EndDate.Format("2006-01-02"),
		TotalDays:          l.TotalDays,
		Reason:             l.Reason,
		Status:             l.Status,
		SubmittedAt:        l.SubmittedAt.Format(time.RFC3339),
		Comments:           l.Comments,
		BalanceBefore:      l.BalanceBefore,
		BalanceAfter:       l.BalanceAfter,
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
