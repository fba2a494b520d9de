package domain

// Leave type categories. Each has an independently tracked balance.
const (
	LeaveTypePaid      = "PAID"
	LeaveTypeUnpaid    = "UNPAID"
	LeaveTypeSick      = "SICK"
	LeaveTypeAnnual    = "ANNUAL"
	LeaveTypeCasual    = "CASUAL"
	LeaveTypeMaternity = "MATERNITY"
	LeaveTypePaternity = "PATERNITY"
	LeaveTypeEmergency = "EMERGENCY"
)

var leaveTypes = map[string]struct{}{
	LeaveTypePaid:      {},
	LeaveTypeUnpaid:    {},
	LeaveTypeSick:      {},
	LeaveTypeAnnual:    {},
	LeaveTypeCasual:    {},
	LeaveTypeMaternity: {},
	LeaveTypePaternity: {},
	LeaveTypeEmergency: {},
}

func IsLeaveType(s string) bool {
	_, ok := leaveTypes[s]
	return ok
}

// IsBalanceFloored reports whether a leave type can never be approved
// past a zero remaining balance. Only UNPAID has no floor.
func IsBalanceFloored(leaveType string) bool {
	return leaveType != LeaveTypeUnpaid
}
