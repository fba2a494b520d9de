package timesheet

type CreateTimesheetRequest struct {
	WorkDate string `json:"work_date" binding:"required"`
	ClockIn  string `json:"clock_in" binding:"required"`
	ClockOut string `json:"clock_out" binding:"required"`
}

type ApproveRequest struct {
	Comment string `json:"comment"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BulkApproveRequest struct {
	IDs     []string `json:"ids" binding:"required,min=1,dive,uuid"`
	Comment string   `json:"comment"`
}

type BulkRejectRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,dive,uuid"`
	Reason string   `json:"reason" binding:"required"`
}

type TimesheetResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	WorkDate      string  `json:"work_date"`
	ClockIn       string  `json:"clock_in"`
	ClockOut      string  `json:"clock_out"`
	Hours         float64 `json:"hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        string  `json:"status"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	Comments      *string `json:"comments,omitempty"`
}
