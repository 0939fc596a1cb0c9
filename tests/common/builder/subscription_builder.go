//go:build unit

package builder

import (
	"time"

	"smart-parking/internal/domain/subscription"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanBuilder struct {
	ID                 uuid.UUID
	Name               string
	DurationDays       int
	Price              string
	DiscountPercentage string
	IsActive           bool
}

func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		ID:                 uuid.New(),
		Name:               "monthly",
		DurationDays:       30,
		Price:              "500.00",
		DiscountPercentage: "20",
		IsActive:           true,
	}
}

func (b *PlanBuilder) With(mutate func(*PlanBuilder)) *PlanBuilder {
	mutate(b)
	return b
}

func (b *PlanBuilder) Build() *subscription.Plan {
	return subscription.ReconstructPlan(
		b.ID,
		b.Name,
		b.DurationDays,
		decimal.RequireFromString(b.Price),
		decimal.RequireFromString(b.DiscountPercentage),
		b.IsActive,
		time.Time{},
		time.Time{},
	)
}

type SubscriptionBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Plan      *subscription.Plan
	StartDate time.Time
	EndDate   time.Time
	Status    subscription.Status
	AutoRenew bool
}

func NewSubscriptionBuilder() *SubscriptionBuilder {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &SubscriptionBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Plan:      NewPlanBuilder().Build(),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
		Status:    subscription.StatusActive,
		AutoRenew: false,
	}
}

func (b *SubscriptionBuilder) With(mutate func(*SubscriptionBuilder)) *SubscriptionBuilder {
	mutate(b)
	return b
}

func (b *SubscriptionBuilder) Build() *subscription.Subscription {
	return subscription.ReconstructSubscription(
		b.ID,
		b.UserID,
		b.Plan,
		b.StartDate,
		b.EndDate,
		b.Status,
		b.AutoRenew,
		time.Time{},
		time.Time{},
	)
}
