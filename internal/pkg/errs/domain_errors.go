package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Spot errors
	ErrSpotNotFound = errors.New("parking spot not found")
	ErrSpotLocked   = errors.New("parking spot is locked")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationConflict  = errors.New("reservation conflict")
	ErrDuplicateReservation = errors.New("duplicate reservation")
	ErrInvalidTimeSlot      = errors.New("invalid time slot")
	ErrReservationEnded     = errors.New("reservation has already ended")
	ErrReservationInactive  = errors.New("reservation is not active")

	// Subscription errors
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrSubscriptionNotActive  = errors.New("subscription is not active")
	ErrActiveSubscriptionHeld = errors.New("user already has an active subscription")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
