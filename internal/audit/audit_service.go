package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/tanzeelnaveed8/Payroll-System-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidRequestID = apperror.New(
	apperror.CodeInvalidInput,
	"invalid request id",
	http.StatusBadRequest,
)

type EntryResponse struct {
	ID             string  `json:"id"`
	RequestID      string  `json:"request_id"`
	RequestKind    string  `json:"request_kind"`
	ActorID        string  `json:"actor_id"`
	Action         string  `json:"action"`
	PreviousStatus string  `json:"previous_status"`
	NewStatus      string  `json:"new_status"`
	Comment        *string `json:"comment,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type Service interface {
	ListByRequest(ctx context.Context, requestID string) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListByRequest(ctx context.Context, requestID string) ([]EntryResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, errInvalidRequestID
	}

	entries, err := s.repo.ListByRequest(ctx, requestID)
	if err != nil {
		s.logger.Error("list audit entries failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = EntryResponse{
			ID:             e.ID.String(),
			RequestID:      e.RequestID.String(),
			RequestKind:    e.RequestKind,
			ActorID:        e.ActorID.String(),
			Action:         e.Action,
			PreviousStatus: e.PreviousStatus,
			NewStatus:      e.NewStatus,
			Comment:        e.Comment,
			CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}
