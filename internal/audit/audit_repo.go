package audit

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes append and read only; entries are never updated
// or deleted.
//
//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, e *Entry) error
	ListByRequest(ctx context.Context, requestID string) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Append runs on the caller's transaction when one is set, so the
// audit entry commits atomically with the decision it records.
func (r *repository) Append(ctx context.Context, e *Entry) error {
	const query = `
		INSERT INTO audit_entries (
			id, request_id, request_kind, actor_id, action,
			previous_status, new_status, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, query,
		e.ID, e.RequestID, e.RequestKind, e.ActorID, e.Action,
		e.PreviousStatus, e.NewStatus, e.Comment,
	)
	return err
}

func (r *repository) ListByRequest(ctx context.Context, requestID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

type execerIface interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() (execerIface, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}
