package ledger

import (
	"context"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/domain"
	ledgererrors "github.com/tanzeelnaveed8/Payroll-System-sub002/internal/ledger/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	Balances(ctx context.Context, employeeID string) (BalancesResponse, error)
	Provision(ctx context.Context, employeeID, leaveType string, days int) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{repo: repo, logger: l}
}

// Balances reads every balance cell for one employee. Concurrent reads
// for the same employee are collapsed into a single repository call.
func (s *service) Balances(ctx context.Context, employeeID string) (BalancesResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalancesResponse{}, ledgererrors.ErrInvalidEmployeeID
	}

	v, err, _ := s.group.Do(employeeID, func() (any, error) {
		return s.repo.Balances(ctx, employeeID)
	})
	if err != nil {
		s.logger.Error("read balances failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalancesResponse{}, err
	}

	balances := v.(map[string]int)
	if len(balances) == 0 {
		return BalancesResponse{}, ledgererrors.ErrBalanceNotFound
	}

	return BalancesResponse{EmployeeID: employeeID, Balances: balances}, nil
}

// Provision sets one balance cell to an absolute day count. Admin
// seeding and yearly accrual use this; approvals only ever deduct.
func (s *service) Provision(ctx context.Context, employeeID, leaveType string, days int) (BalanceResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return BalanceResponse{}, ledgererrors.ErrInvalidEmployeeID
	}
	if !domain.IsLeaveType(leaveType) {
		return BalanceResponse{}, ledgererrors.ErrInvalidLeaveType
	}
	if days < 0 {
		return BalanceResponse{}, ledgererrors.ErrNegativeProvision
	}

	if err := s.repo.Provision(ctx, &LeaveBalance{EmployeeID: id, LeaveType: leaveType, Days: days}); err != nil {
		s.logger.Error("provision balance failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", leaveType),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	s.logger.Info("balance provisioned",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", leaveType),
		zap.Int("days", days),
	)
	return BalanceResponse{EmployeeID: employeeID, LeaveType: leaveType, Days: days}, nil
}
