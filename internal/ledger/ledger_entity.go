package ledger

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one (employee, leave type) cell of the per-employee
// balance ledger. Rows are created when an employee is provisioned and
// mutated exclusively through Deduct.
type LeaveBalance struct {
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;primaryKey"`
	LeaveType  string    `gorm:"column:leave_type;type:varchar(30);primaryKey"`
	Days       int       `gorm:"column:days;type:int;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
