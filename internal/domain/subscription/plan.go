package subscription

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPlanDuration  = errors.New("plan duration must be 30, 90 or 365 days")
	ErrInvalidDiscount      = errors.New("discount percentage must be between 0 and 100")
	ErrNegativePlanPrice    = errors.New("plan price cannot be negative")
	ErrEmptyPlanName        = errors.New("plan name cannot be empty")
	ErrInactivePlan         = errors.New("plan is not active")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrSubscriptionInactive = errors.New("subscription is not active")
)

var allowedDurations = map[int]struct{}{30: {}, 90: {}, 365: {}}

// Plan is a purchasable subscription tier granting a percentage
// discount on every priced parking hour.
type Plan struct {
	id                 uuid.UUID
	name               string
	durationDays       int
	price              decimal.Decimal
	discountPercentage decimal.Decimal
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewPlan(id uuid.UUID, name string, durationDays int, price, discountPercentage decimal.Decimal, isActive bool) (*Plan, error) {
	if name == "" {
		return nil, ErrEmptyPlanName
	}
	if _, ok := allowedDurations[durationDays]; !ok {
		return nil, ErrInvalidPlanDuration
	}
	if price.IsNegative() {
		return nil, ErrNegativePlanPrice
	}
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidDiscount
	}
	return &Plan{
		id:                 id,
		name:               name,
		durationDays:       durationDays,
		price:              price,
		discountPercentage: discountPercentage,
		isActive:           isActive,
	}, nil
}

func ReconstructPlan(id uuid.UUID, name string, durationDays int, price, discountPercentage decimal.Decimal, isActive bool, createdAt, updatedAt time.Time) *Plan {
	return &Plan{
		id:                 id,
		name:               name,
		durationDays:       durationDays,
		price:              price,
		discountPercentage: discountPercentage,
		isActive:           isActive,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (p *Plan) Duration() time.Duration {
	return time.Duration(p.durationDays) * 24 * time.Hour
}

func (p *Plan) ID() uuid.UUID                       { return p.id }
func (p *Plan) Name() string                        { return p.name }
func (p *Plan) DurationDays() int                   { return p.durationDays }
func (p *Plan) Price() decimal.Decimal              { return p.price }
func (p *Plan) DiscountPercentage() decimal.Decimal { return p.discountPercentage }
func (p *Plan) IsActive() bool                      { return p.isActive }
func (p *Plan) CreatedAt() time.Time                { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time                { return p.updatedAt }
