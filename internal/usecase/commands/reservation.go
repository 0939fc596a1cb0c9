package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"smart-parking/internal/domain/reservation"
	"smart-parking/internal/domain/spot"
	reqdto "smart-parking/internal/handler/dto/request"
	"smart-parking/internal/infra"
	"smart-parking/internal/infra/db"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/pkg/metrics"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const idempotencyTTL = 24 * time.Hour

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	UpdateSlotAndPrice(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
}

type SpotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
}

type ReservationReadStore interface {
	FindDomainByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*queries.IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID, resultReservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, userID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	ExtendReservation(ctx context.Context, reservationID, userID uuid.UUID, additionalHours int) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, reservationID, userID uuid.UUID) error
}

type reservationUseCaseImpl struct {
	reservationRepo    ReservationRepository
	spots              SpotReadStore
	reservations       ReservationReadStore
	idempotencyRepo    IdempotencyRepository
	notificationRepo   NotificationRepository
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	db                 *pgxpool.Pool
	clock              clock.Clock
}

func NewReservationUseCase(
	reservationRepo ReservationRepository,
	spots SpotReadStore,
	reservations ReservationReadStore,
	idempotencyRepo IdempotencyRepository,
	notificationRepo NotificationRepository,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		reservationRepo:    reservationRepo,
		spots:              spots,
		reservations:       reservations,
		idempotencyRepo:    idempotencyRepo,
		notificationRepo:   notificationRepo,
		factory:            factory,
		reservationQueries: reservationQueries,
		db:                 db,
		clock:              clock,
	}
}

func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID, idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	requestHash := r.calculateRequestHash(req)
	expiresAt := r.clock.Now().Add(idempotencyTTL)

	replayed, err := r.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
	}

	view, err := r.createNewReservation(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	metrics.ReservationsCreatedTotal.Inc()
	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// handleIdempotency claims the key or resolves what the previous
// request with the same key produced. A non-nil view means replay.
func (r *reservationUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.ReservationView, error) {
	inserted, err := r.idempotencyRepo.TryInsert(ctx, idempotencyKey, userID, "POST /reservations", requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := r.idempotencyRepo.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultReservationID == nil {
			return nil, errs.New("completed request missing result reservation ID")
		}
		return r.reservationQueries.GetByIDSystem(ctx, *existing.ResultReservationID)

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, errs.ErrDuplicateReservation
		}
		return nil, errs.ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (r *reservationUseCaseImpl) createNewReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.ReservationView, error) {
	spotEntity, err := r.spots.FindByID(ctx, req.SpotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSpotNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if spotEntity.IsLocked() {
		return nil, errs.ErrSpotLocked
	}

	slot, err := req.ToTimeSlot()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}
	if !slot.Start().After(r.clock.Now()) {
		return nil, errs.ErrInvalidTimeSlot
	}

	reservationEntity, err := r.factory.CreateReservation(ctx, spotEntity.ID(), userID, slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return r.executeReservationTransaction(ctx, reservationEntity, idempotencyKey, userID)
}

func (r *reservationUseCaseImpl) executeReservationTransaction(
	ctx context.Context,
	reservationEntity *reservation.Reservation,
	idempotencyKey, userID uuid.UUID,
) (*queries.ReservationView, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := r.reservationRepo.Create(ctx, tx, reservationEntity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrReservationConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := r.createReservationJob(ctx, tx, reservationEntity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := r.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, reservationEntity.ID()); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, errs.ErrDatabaseOperationFailed)
	}

	return r.reservationQueries.GetByIDSystem(ctx, reservationEntity.ID())
}

func (r *reservationUseCaseImpl) ExtendReservation(
	ctx context.Context,
	reservationID, userID uuid.UUID,
	additionalHours int,
) (*queries.ReservationView, error) {
	entity, err := r.reservations.FindDomainByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if entity.UserID() != userID {
		return nil, errs.ErrReservationNotFound
	}

	newSlot, err := entity.TimeSlot().ExtendedBy(additionalHours)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	quote, err := r.factory.PriceExtension(ctx, entity, newSlot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := entity.ExtendTo(newSlot, quote.Total, r.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := r.reservationRepo.UpdateSlotAndPrice(ctx, tx, entity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrReservationConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := r.createReservationJob(ctx, tx, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, errs.ErrDatabaseOperationFailed)
	}

	return r.reservationQueries.GetByIDSystem(ctx, reservationID)
}

func (r *reservationUseCaseImpl) CancelReservation(ctx context.Context, reservationID, userID uuid.UUID) error {
	entity, err := r.reservations.FindDomainByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrReservationNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if entity.UserID() != userID {
		return errs.ErrReservationNotFound
	}

	if err := entity.Cancel(); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := r.reservationRepo.UpdateStatus(ctx, reservationID, entity.Status()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (r *reservationUseCaseImpl) createReservationJob(ctx context.Context, tx db.DBTX, entity *reservation.Reservation) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": entity.ID(),
		"spot_id":        entity.SpotID(),
		"user_id":        entity.UserID(),
		"start_time":     entity.TimeSlot().Start(),
		"end_time":       entity.TimeSlot().End(),
	})
	if err != nil {
		return err
	}
	return r.notificationRepo.CreateJob(ctx, tx, "reservation_confirmed", "reservations", payload, r.clock.Now())
}

func (r *reservationUseCaseImpl) calculateRequestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func isTxClosed(err error) bool {
	return errors.Is(err, pgx.ErrTxClosed)
}
