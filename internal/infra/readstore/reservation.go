package readstore

import (
	"context"

	"smart-parking/internal/domain/reservation"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/pgconv"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	FindDomainByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error)
}

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewSQL = `
SELECT r.id, r.spot_id, s.name, r.user_id, u.email,
       r.start_time, r.end_time, r.status, r.total_price,
       r.created_at, r.updated_at
FROM reservations r
JOIN parking_spots s ON s.id = r.spot_id
JOIN users u ON u.id = r.user_id
WHERE r.id = $1
`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		v                    queries.ReservationView
		startTime, endTime   pgtype.Timestamptz
		totalPrice           pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, reservationViewSQL, id).Scan(
		&v.ID, &v.SpotID, &v.SpotName, &v.UserID, &v.UserEmail,
		&startTime, &endTime, &v.Status, &totalPrice,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	v.StartTime = pgconv.TimeFromPgtype(startTime)
	v.EndTime = pgconv.TimeFromPgtype(endTime)
	v.TotalPrice, err = pgconv.DecimalFromNumeric(totalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_price value", err)
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

const reservationDomainSQL = `
SELECT id, spot_id, user_id, start_time, end_time, status, total_price, created_at, updated_at
FROM reservations
WHERE id = $1
`

func (r *ReservationReadStore) FindDomainByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID, spotID, userID uuid.UUID
		startTime, endTime    pgtype.Timestamptz
		status                string
		totalPrice            pgtype.Numeric
		createdAt, updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, reservationDomainSQL, id).Scan(
		&resID, &spotID, &userID, &startTime, &endTime, &status, &totalPrice, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	slot, err := reservation.NewTimeSlot(pgconv.TimeFromPgtype(startTime), pgconv.TimeFromPgtype(endTime))
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation time slot", err)
	}
	price, err := pgconv.DecimalFromNumeric(totalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_price value", err)
	}
	return reservation.ReconstructReservation(
		resID, spotID, userID, slot, reservation.Status(status), price,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

const reservationsByUserSQL = `
SELECT r.id, r.spot_id, s.name, r.start_time, r.end_time, r.status, r.total_price, r.created_at
FROM reservations r
JOIN parking_spots s ON s.id = r.spot_id
WHERE r.user_id = $1
ORDER BY r.start_time DESC, r.id
LIMIT $2
`

func (r *ReservationReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationsByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item               queries.ReservationListItem
			startTime, endTime pgtype.Timestamptz
			totalPrice         pgtype.Numeric
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.SpotID, &item.SpotName,
			&startTime, &endTime, &item.Status, &totalPrice, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.StartTime = pgconv.TimeFromPgtype(startTime)
		item.EndTime = pgconv.TimeFromPgtype(endTime)
		item.TotalPrice, err = pgconv.DecimalFromNumeric(totalPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid total_price value", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return result, nil
}
