package repository

import (
	"context"
	"time"

	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error
}

type NotificationWriteRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationWriteRepository {
	return &NotificationWriteRepository{db: db}
}

const insertNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'pending')
`

func (r *NotificationWriteRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := tx.Exec(ctx, insertNotificationJobSQL, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

const updateNotificationJobSQL = `
UPDATE notification_jobs
SET status = $2, last_error = $3, attempts = attempts + 1, updated_at = now()
WHERE id = $1
`

func (r *NotificationWriteRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error {
	if _, err := r.db.Exec(ctx, updateNotificationJobSQL, jobID, status, pgconv.StringPtrToPgtype(lastError)); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
