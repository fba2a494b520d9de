package events

import "time"

const (
	LeaveDecisionTopic     = "hr.leave.decision.v1"
	TimesheetDecisionTopic = "hr.timesheet.decision.v1"

	EventLeaveApproved     = "leave.approved"
	EventLeaveRejected     = "leave.rejected"
	EventTimesheetApproved = "timesheet.approved"
	EventTimesheetRejected = "timesheet.rejected"
)

// ReviewDecidedEvent is emitted for every terminal approval decision.
// Downstream payroll processing consumes these; this service only
// produces them, via the transactional outbox.
type ReviewDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	RequestKind    string    `json:"request_kind"`
	EmployeeID     string    `json:"employee_id"`
	ReviewerID     string    `json:"reviewer_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
