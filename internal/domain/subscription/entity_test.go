//go:build unit

package subscription_test

import (
	"testing"
	"time"

	"smart-parking/internal/domain/subscription"
	"smart-parking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("active plan opens a period of one plan duration", func(t *testing.T) {
		plan := builder.NewPlanBuilder().Build()

		sub, err := subscription.NewSubscription(uuid.New(), plan, start, true)
		require.NoError(t, err)
		assert.Equal(t, start, sub.StartDate())
		assert.Equal(t, start.AddDate(0, 0, 30), sub.EndDate())
		assert.Equal(t, subscription.StatusActive, sub.Status())
		assert.True(t, sub.AutoRenew())
	})

	t.Run("nil plan rejected", func(t *testing.T) {
		_, err := subscription.NewSubscription(uuid.New(), nil, start, false)
		assert.ErrorIs(t, err, subscription.ErrInvalidSubscription)
	})

	t.Run("inactive plan rejected", func(t *testing.T) {
		plan := builder.NewPlanBuilder().With(func(b *builder.PlanBuilder) {
			b.IsActive = false
		}).Build()
		_, err := subscription.NewSubscription(uuid.New(), plan, start, false)
		assert.ErrorIs(t, err, subscription.ErrInactivePlan)
	})
}

func TestSubscriptionIsActiveAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
		b.StartDate = start
		b.EndDate = end
	}).Build()

	assert.False(t, sub.IsActiveAt(start.Add(-time.Second)))
	assert.True(t, sub.IsActiveAt(start), "start date is inclusive")
	assert.True(t, sub.IsActiveAt(end), "end date is inclusive")
	assert.False(t, sub.IsActiveAt(end.Add(time.Second)))

	cancelled := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
		b.StartDate = start
		b.EndDate = end
		b.Status = subscription.StatusCancelled
	}).Build()
	assert.False(t, cancelled.IsActiveAt(start.Add(time.Hour)))
}

func TestSubscriptionCancel(t *testing.T) {
	t.Run("active subscription cancels and stops auto-renew", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.AutoRenew = true
		}).Build()

		require.NoError(t, sub.Cancel())
		assert.Equal(t, subscription.StatusCancelled, sub.Status())
		assert.False(t, sub.AutoRenew())
	})

	t.Run("only active subscriptions cancel", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.Status = subscription.StatusExpired
		}).Build()
		assert.ErrorIs(t, sub.Cancel(), subscription.ErrSubscriptionInactive)
	})
}

func TestSubscriptionRenew(t *testing.T) {
	t.Run("period rolls forward from the current end date", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().Build()
		oldEnd := sub.EndDate()

		require.NoError(t, sub.Renew())
		assert.Equal(t, oldEnd, sub.StartDate())
		assert.Equal(t, oldEnd.Add(sub.Plan().Duration()), sub.EndDate())
		assert.Equal(t, subscription.StatusActive, sub.Status())
	})

	t.Run("only active subscriptions renew", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.Status = subscription.StatusCancelled
		}).Build()
		assert.ErrorIs(t, sub.Renew(), subscription.ErrSubscriptionInactive)
	})
}

func TestPlanValidation(t *testing.T) {
	tests := []struct {
		name     string
		planName string
		days     int
		price    string
		discount string
		errIs    error
	}{
		{name: "monthly plan", planName: "monthly", days: 30, price: "500.00", discount: "20"},
		{name: "yearly plan", planName: "yearly", days: 365, price: "4000.00", discount: "35"},
		{name: "empty name", planName: "", days: 30, price: "500.00", discount: "20", errIs: subscription.ErrEmptyPlanName},
		{name: "unsupported duration", planName: "weekly", days: 7, price: "100.00", discount: "5", errIs: subscription.ErrInvalidPlanDuration},
		{name: "negative price", planName: "monthly", days: 30, price: "-1", discount: "20", errIs: subscription.ErrNegativePlanPrice},
		{name: "discount above 100", planName: "monthly", days: 30, price: "500.00", discount: "101", errIs: subscription.ErrInvalidDiscount},
		{name: "negative discount", planName: "monthly", days: 30, price: "500.00", discount: "-1", errIs: subscription.ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subscription.NewPlan(
				uuid.New(),
				tt.planName,
				tt.days,
				decimal.RequireFromString(tt.price),
				decimal.RequireFromString(tt.discount),
				true,
			)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}
