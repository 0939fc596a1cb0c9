package tariff

import (
	"context"
	"time"

	"smart-parking/internal/domain/subscription"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultHourlyRate is charged when no rule matches at any scope.
// A configuration gap is not an error: pricing never fails for it.
var DefaultHourlyRate = decimal.RequireFromString("100.00")

var oneHundred = decimal.NewFromInt(100)

// RuleSource loads the active rule candidates for a spot: rules scoped
// to the spot itself and zone-wide rules of active zones. It is called
// once per price calculation, never per hour.
type RuleSource interface {
	FindCandidateRules(ctx context.Context, spotID uuid.UUID) (spotRules, zoneRules []*Rule, err error)
}

// SubscriptionSource resolves the subscription active for a user at an
// instant. A nil subscription with nil error means "no discount".
type SubscriptionSource interface {
	FindActiveSubscription(ctx context.Context, userID uuid.UUID, at time.Time) (*subscription.Subscription, error)
}

// Quote is the outcome of one price calculation. Total carries the
// discounted sum, BaseTotal the sum before any subscription discount;
// both are rounded to 2 decimal places.
type Quote struct {
	Total           decimal.Decimal
	BaseTotal       decimal.Decimal
	DiscountPercent decimal.Decimal
	HasDiscount     bool
	Hours           int
}

// Calculator walks a reservation interval hour by hour, resolves the
// rule charged for each bucket and accumulates the discounted total.
// Stateless and safe for concurrent use.
type Calculator struct {
	rules       RuleSource
	subs        SubscriptionSource
	defaultRate decimal.Decimal
}

func NewCalculator(rules RuleSource, subs SubscriptionSource, defaultRate decimal.Decimal) *Calculator {
	if defaultRate.IsZero() {
		defaultRate = DefaultHourlyRate
	}
	return &Calculator{
		rules:       rules,
		subs:        subs,
		defaultRate: defaultRate,
	}
}

// CalculatePrice prices the half-open interval [start, end) for a user
// and spot. Billing is per hour bucket sampled at start, start+1h, ...:
// a bucket touched for any fraction of an hour charges the full hourly
// rate. The discount is resolved once at the interval start and applied
// per bucket. Callers must guarantee end > start; a non-positive
// interval yields a zero quote.
func (c *Calculator) CalculatePrice(ctx context.Context, userID, spotID uuid.UUID, start, end time.Time) (Quote, error) {
	quote := Quote{
		Total:           decimal.Zero,
		BaseTotal:       decimal.Zero,
		DiscountPercent: decimal.Zero,
	}
	if !end.After(start) {
		return quote, nil
	}

	spotRules, zoneRules, err := c.rules.FindCandidateRules(ctx, spotID)
	if err != nil {
		return Quote{}, err
	}

	sub, err := c.subs.FindActiveSubscription(ctx, userID, start)
	if err != nil {
		return Quote{}, err
	}
	if sub != nil {
		quote.DiscountPercent = sub.DiscountPercentage()
		quote.HasDiscount = quote.DiscountPercent.IsPositive()
	}

	for current := start; current.Before(end); current = current.Add(time.Hour) {
		hourPrice := c.defaultRate
		if rule := ResolveRule(spotRules, zoneRules, current); rule != nil {
			hourPrice = rule.PricePerHour()
		}

		quote.BaseTotal = quote.BaseTotal.Add(hourPrice)
		if quote.HasDiscount {
			hourPrice = hourPrice.Sub(hourPrice.Mul(quote.DiscountPercent).Div(oneHundred))
		}
		quote.Total = quote.Total.Add(hourPrice)
		quote.Hours++
	}

	quote.Total = quote.Total.Round(2)
	quote.BaseTotal = quote.BaseTotal.Round(2)
	return quote, nil
}
