package audit_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	listByRequestFn func(ctx context.Context, requestID string) ([]audit.Entry, error)
}

func (f *fakeAuditRepository) WithTx(tx *sql.Tx) audit.Repository {
	return f
}

func (f *fakeAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	return nil
}

func (f *fakeAuditRepository) ListByRequest(ctx context.Context, requestID string) ([]audit.Entry, error) {
	if f.listByRequestFn != nil {
		return f.listByRequestFn(ctx, requestID)
	}
	return nil, nil
}

func TestAuditService_ListByRequest(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	t.Run("returns entries in stored order", func(t *testing.T) {
		repo := &fakeAuditRepository{
			listByRequestFn: func(ctx context.Context, rid string) ([]audit.Entry, error) {
				return []audit.Entry{
					{
						ID:             uuid.New(),
						RequestID:      requestID,
						RequestKind:    audit.KindLeave,
						ActorID:        uuid.New(),
						Action:         audit.ActionApprove,
						PreviousStatus: "PENDING",
						NewStatus:      "APPROVED",
						CreatedAt:      time.Now().UTC(),
					},
				}, nil
			},
		}
		svc := audit.NewService(repo)

		entries, err := svc.ListByRequest(ctx, requestID.String())

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, audit.ActionApprove, entries[0].Action)
		assert.Equal(t, "PENDING", entries[0].PreviousStatus)
		assert.Equal(t, "APPROVED", entries[0].NewStatus)
	})

	t.Run("invalid request id rejected", func(t *testing.T) {
		svc := audit.NewService(&fakeAuditRepository{})

		_, err := svc.ListByRequest(ctx, "not-a-uuid")

		assert.Error(t, err)
	})
}
