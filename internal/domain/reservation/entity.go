package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrNotActive           = errors.New("only active reservations can be extended")
	ErrAlreadyEnded        = errors.New("reservation has already ended")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
	ErrInvalidStatusChange = errors.New("invalid reservation status transition")
)

type Reservation struct {
	id         uuid.UUID
	spotID     uuid.UUID
	userID     uuid.UUID
	timeSlot   TimeSlot
	status     Status
	totalPrice decimal.Decimal
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(spotID, userID uuid.UUID, slot TimeSlot, totalPrice decimal.Decimal) (*Reservation, error) {
	if totalPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Reservation{
		id:         uuid.New(),
		spotID:     spotID,
		userID:     userID,
		timeSlot:   slot,
		status:     StatusPending,
		totalPrice: totalPrice,
	}, nil
}

func ReconstructReservation(
	id, spotID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	totalPrice decimal.Decimal,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		spotID:     spotID,
		userID:     userID,
		timeSlot:   timeSlot,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ExtendTo moves the slot end forward and adds the price of the
// extension sub-interval, which the caller prices separately through
// the tariff engine.
func (r *Reservation) ExtendTo(newSlot TimeSlot, additionalPrice decimal.Decimal, now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if now.After(r.timeSlot.End()) {
		return ErrAlreadyEnded
	}
	if additionalPrice.IsNegative() {
		return ErrNegativePrice
	}
	r.timeSlot = newSlot
	r.totalPrice = r.totalPrice.Add(additionalPrice)
	return nil
}

func (r *Reservation) Activate() error {
	if r.status != StatusPending {
		return ErrInvalidStatusChange
	}
	r.status = StatusActive
	return nil
}

func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if r.status == StatusCompleted {
		return ErrInvalidStatusChange
	}
	r.status = StatusCancelled
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.timeSlot.End())
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) SpotID() uuid.UUID           { return r.spotID }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot          { return r.timeSlot }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalPrice() decimal.Decimal { return r.totalPrice }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
