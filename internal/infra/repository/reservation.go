package repository

import (
	"context"
	"errors"

	"smart-parking/internal/domain/reservation"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation  = "23P01"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	UpdateSlotAndPrice(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
}

type ReservationWriteRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationWriteRepository {
	return &ReservationWriteRepository{db: db}
}

const insertReservationSQL = `
INSERT INTO reservations (id, spot_id, user_id, start_time, end_time, status, total_price)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create relies on the exclusion constraint over (spot_id, time range)
// to reject double-booking atomically instead of a check-then-insert.
func (r *ReservationWriteRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	_, err := tx.Exec(ctx, insertReservationSQL,
		res.ID(), res.SpotID(), res.UserID(),
		res.TimeSlot().Start(), res.TimeSlot().End(),
		res.Status().String(), pgconv.DecimalToNumeric(res.TotalPrice()),
	)
	if err != nil {
		return mapReservationWriteErr("failed to create reservation", err)
	}
	return nil
}

const updateReservationSlotSQL = `
UPDATE reservations
SET end_time = $2, total_price = $3, updated_at = now()
WHERE id = $1
`

func (r *ReservationWriteRepository) UpdateSlotAndPrice(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, updateReservationSlotSQL,
		res.ID(), res.TimeSlot().End(), pgconv.DecimalToNumeric(res.TotalPrice()),
	)
	if err != nil {
		return mapReservationWriteErr("failed to update reservation slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateReservationStatusSQL = `
UPDATE reservations
SET status = $2, updated_at = now()
WHERE id = $1
`

func (r *ReservationWriteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func mapReservationWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return infra.WrapRepoErr("reservation slot already taken", err, infra.KindConflict)
		case pgUniqueViolation:
			return infra.WrapRepoErr("duplicate reservation", err, infra.KindDuplicateKey)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr("referenced row does not exist", err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
