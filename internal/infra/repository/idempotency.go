package repository

import (
	"context"
	"time"

	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID, resultReservationID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type IdempotencyWriteRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyWriteRepository {
	return &IdempotencyWriteRepository{db: db}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

// TryInsert claims the key. false means another request already holds
// it; the caller then inspects the stored record.
func (r *IdempotencyWriteRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const getIdempotencySQL = `
SELECT key, user_id, endpoint, request_hash, status, result_reservation_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyWriteRepository) Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyRecord, error) {
	var (
		rec                 queries.IdempotencyRecord
		resultReservationID pgtype.UUID
		expiresAt           pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getIdempotencySQL, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status,
		&resultReservationID, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.ResultReservationID = pgconv.UUIDPtrFromPgtype(resultReservationID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_reservation_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyWriteRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID, resultReservationID uuid.UUID) error {
	if _, err := tx.Exec(ctx, completeIdempotencySQL, key, userID, resultReservationID); err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

const deleteExpiredIdempotencySQL = `
DELETE FROM idempotency_keys
WHERE expires_at < $1
`

func (r *IdempotencyWriteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencySQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
