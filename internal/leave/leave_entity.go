package leave

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// BalanceSnapshot stores the employee's per-type balances captured at
// decision time. Persisted as jsonb; populated only on approval.
type BalanceSnapshot map[string]int

func (s BalanceSnapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *BalanceSnapshot) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported balance snapshot type %T", value)
	}

	return json.Unmarshal(raw, s)
}

type LeaveRequest struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID         uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leave_requests_employee_dates"`
	EmployeeDepartment string    `gorm:"column:employee_department;type:varchar(100);not null;index"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"column:total_days;type:int;not null;default:1"`
	Reason    string    `gorm:"column:reason;type:text;not null"`

	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	SubmittedAt time.Time `gorm:"column:submitted_at;type:timestamptz;not null"`

	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at;type:timestamptz"`
	Comments   *string    `gorm:"column:comments;type:text"`

	BalanceBefore BalanceSnapshot `gorm:"column:balance_before;type:jsonb"`
	BalanceAfter  BalanceSnapshot `gorm:"column:balance_after;type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *LeaveRequest) OwnerID() string {
	return l.EmployeeID.String()
}

func (l *LeaveRequest) OwnerDepartment() string {
	return l.EmployeeDepartment
}

func (l *LeaveRequest) CurrentStatus() string {
	return l.Status
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
