package leave

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=PAID UNPAID SICK ANNUAL CASUAL MATERNITY PATERNITY EMERGENCY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
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

type LeaveRequestResponse struct {
	ID                 string         `json:"id"`
	EmployeeID         string         `json:"employee_id"`
	EmployeeDepartment string         `json:"employee_department"`
	LeaveType          string         `json:"leave_type"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	TotalDays          int            `json:"total_days"`
	Reason             string         `json:"reason"`
	Status             string         `json:"status"`
	SubmittedAt        string         `json:"submitted_at"`
	ReviewedBy         *string        `json:"reviewed_by,omitempty"`
	ReviewedAt         *string        `json:"reviewed_at,omitempty"`
	Comments           *string        `json:"comments,omitempty"`
	BalanceBefore      map[string]int `json:"leave_balance_before,omitempty"`
	BalanceAfter       map[string]int `json:"leave_balance_after,omitempty"`
}
