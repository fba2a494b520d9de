package timesheet

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

// RegularHoursCap is the daily cutoff: hours up to the cap count as
// regular, everything above as overtime.
const RegularHoursCap = 8.0

type Timesheet struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_timesheets_employee_date,unique"`
	Department string    `gorm:"column:department;type:varchar(100);not null;index"`
	Role       string    `gorm:"column:role;type:varchar(50);not null"`

	WorkDate time.Time `gorm:"column:work_date;type:date;not null;index:idx_timesheets_employee_date,unique"`
	ClockIn  time.Time `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut time.Time `gorm:"column:clock_out;type:timestamptz;not null"`

	Hours         float64 `gorm:"column:hours;type:numeric(5,2);not null"`
	RegularHours  float64 `gorm:"column:regular_hours;type:numeric(5,2);not null"`
	OvertimeHours float64 `gorm:"column:overtime_hours;type:numeric(5,2);not null"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:'DRAFT';index"`

	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at;type:timestamptz"`
	Comments   *string    `gorm:"column:comments;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Timesheet) OwnerID() string {
	return t.EmployeeID.String()
}

func (t *Timesheet) OwnerDepartment() string {
	return t.Department
}

func (t *Timesheet) CurrentStatus() string {
	return t.Status
}

func (Timesheet) TableName() string {
	return "timesheets"
}
