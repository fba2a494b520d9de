package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindLeave     = "leave"
	KindTimesheet = "timesheet"

	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// Entry is one reviewer action on one request. The table is
// append-only: entries are never updated or deleted.
type Entry struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID      uuid.UUID `gorm:"column:request_id;type:uuid;not null;index"`
	RequestKind    string    `gorm:"column:request_kind;type:varchar(20);not null"`
	ActorID        uuid.UUID `gorm:"column:actor_id;type:uuid;not null"`
	Action         string    `gorm:"column:action;type:varchar(20);not null"`
	PreviousStatus string    `gorm:"column:previous_status;type:varchar(20);not null"`
	NewStatus      string    `gorm:"column:new_status;type:varchar(20);not null"`
	Comment        *string   `gorm:"column:comment;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "audit_entries"
}
