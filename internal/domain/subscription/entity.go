package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription is one purchased period of a plan. A user may accumulate
// many records over time; callers are responsible for keeping at most
// one concurrently active per user. The pricing engine only reads.
type Subscription struct {
	id        uuid.UUID
	userID    uuid.UUID
	plan      *Plan
	startDate time.Time
	endDate   time.Time
	status    Status
	autoRenew bool
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription opens a subscription period starting now on an active
// plan; the end date follows from the plan duration.
func NewSubscription(userID uuid.UUID, plan *Plan, start time.Time, autoRenew bool) (*Subscription, error) {
	if plan == nil {
		return nil, ErrInvalidSubscription
	}
	if !plan.IsActive() {
		return nil, ErrInactivePlan
	}
	return &Subscription{
		id:        uuid.New(),
		userID:    userID,
		plan:      plan,
		startDate: start,
		endDate:   start.Add(plan.Duration()),
		status:    StatusActive,
		autoRenew: autoRenew,
	}, nil
}

func ReconstructSubscription(
	id, userID uuid.UUID,
	plan *Plan,
	startDate, endDate time.Time,
	status Status,
	autoRenew bool,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:        id,
		userID:    userID,
		plan:      plan,
		startDate: startDate,
		endDate:   endDate,
		status:    status,
		autoRenew: autoRenew,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// IsActiveAt reports whether the subscription grants its discount at
// the given instant. Both period ends are inclusive.
func (s *Subscription) IsActiveAt(t time.Time) bool {
	return s.status == StatusActive && !t.Before(s.startDate) && !t.After(s.endDate)
}

// DiscountPercentage exposes the plan discount in [0,100].
func (s *Subscription) DiscountPercentage() decimal.Decimal {
	return s.plan.DiscountPercentage()
}

// Cancel ends the subscription and switches auto-renew off.
func (s *Subscription) Cancel() error {
	if s.status != StatusActive {
		return ErrSubscriptionInactive
	}
	s.status = StatusCancelled
	s.autoRenew = false
	return nil
}

// Renew rolls the period forward by one plan duration starting at the
// current end date. Only active subscriptions renew.
func (s *Subscription) Renew() error {
	if s.status != StatusActive {
		return ErrSubscriptionInactive
	}
	s.startDate = s.endDate
	s.endDate = s.startDate.Add(s.plan.Duration())
	return nil
}

func (s *Subscription) ID() uuid.UUID        { return s.id }
func (s *Subscription) UserID() uuid.UUID    { return s.userID }
func (s *Subscription) Plan() *Plan          { return s.plan }
func (s *Subscription) StartDate() time.Time { return s.startDate }
func (s *Subscription) EndDate() time.Time   { return s.endDate }
func (s *Subscription) Status() Status       { return s.status }
func (s *Subscription) AutoRenew() bool      { return s.autoRenew }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }
