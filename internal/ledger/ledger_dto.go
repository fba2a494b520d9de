package ledger

type BalancesResponse struct {
	EmployeeID string         `json:"employee_id"`
	Balances   map[string]int `json:"balances"`
}

type ProvisionRequest struct {
	Days int `json:"days" binding:"min=0"`
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Days       int    `json:"days"`
}
