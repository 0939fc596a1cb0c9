//go:build unit

package tariff_test

import (
	"context"
	"testing"
	"time"

	"smart-parking/internal/domain/subscription"
	"smart-parking/internal/domain/tariff"
	"smart-parking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuleSource struct {
	spotRules []*tariff.Rule
	zoneRules []*tariff.Rule
	err       error
	calls     int
}

func (f *fakeRuleSource) FindCandidateRules(_ context.Context, _ uuid.UUID) ([]*tariff.Rule, []*tariff.Rule, error) {
	f.calls++
	return f.spotRules, f.zoneRules, f.err
}

type fakeSubscriptionSource struct {
	sub *subscription.Subscription
	err error
}

func (f *fakeSubscriptionSource) FindActiveSubscription(_ context.Context, _ uuid.UUID, _ time.Time) (*subscription.Subscription, error) {
	return f.sub, f.err
}

func newCalculator(rules *fakeRuleSource, subs *fakeSubscriptionSource) *tariff.Calculator {
	return tariff.NewCalculator(rules, subs, tariff.DefaultHourlyRate)
}

func TestCalculatePrice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	spotID := uuid.New()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("default rate when no rule matches", func(t *testing.T) {
		calc := newCalculator(&fakeRuleSource{}, &fakeSubscriptionSource{})

		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "200.00", quote.Total.StringFixed(2))
		assert.Equal(t, "200.00", quote.BaseTotal.StringFixed(2))
		assert.Equal(t, 2, quote.Hours)
		assert.False(t, quote.HasDiscount)
	})

	t.Run("matched rule priced with subscription discount", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.PricePerHour = "150.00"
		}).Build()
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.UserID = userID
			b.Plan = builder.NewPlanBuilder().With(func(p *builder.PlanBuilder) {
				p.DiscountPercentage = "20"
			}).Build()
		}).Build()
		calc := newCalculator(
			&fakeRuleSource{zoneRules: []*tariff.Rule{rule}},
			&fakeSubscriptionSource{sub: sub},
		)

		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "240.00", quote.Total.StringFixed(2))
		assert.Equal(t, "300.00", quote.BaseTotal.StringFixed(2))
		assert.True(t, quote.HasDiscount)
		assert.Equal(t, "20", quote.DiscountPercent.String())
	})

	t.Run("no subscription means no discount", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.PricePerHour = "150.00"
		}).Build()
		calc := newCalculator(
			&fakeRuleSource{zoneRules: []*tariff.Rule{rule}},
			&fakeSubscriptionSource{},
		)

		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "150.00", quote.Total.StringFixed(2))
		assert.False(t, quote.HasDiscount)
	})

	t.Run("partial hour charges a full bucket", func(t *testing.T) {
		calc := newCalculator(&fakeRuleSource{}, &fakeSubscriptionSource{})

		// 10:00-11:30 samples buckets at 10:00 and 11:00.
		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(90*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 2, quote.Hours)
		assert.Equal(t, "200.00", quote.Total.StringFixed(2))
	})

	t.Run("rule boundaries fall on bucket starts", func(t *testing.T) {
		// Morning rate applies at 11:00, afternoon at 12:00.
		morning := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodMorning
			b.PricePerHour = "50.00"
		}).Build()
		afternoon := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodAfternoon
			b.PricePerHour = "120.00"
		}).Build()
		calc := newCalculator(
			&fakeRuleSource{zoneRules: []*tariff.Rule{morning, afternoon}},
			&fakeSubscriptionSource{},
		)

		from := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
		quote, err := calc.CalculatePrice(ctx, userID, spotID, from, from.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "170.00", quote.Total.StringFixed(2))
	})

	t.Run("non-positive interval yields zero quote", func(t *testing.T) {
		rules := &fakeRuleSource{}
		calc := newCalculator(rules, &fakeSubscriptionSource{})

		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start)
		require.NoError(t, err)
		assert.True(t, quote.Total.IsZero())
		assert.Equal(t, 0, quote.Hours)

		quote, err = calc.CalculatePrice(ctx, userID, spotID, start, start.Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, quote.Total.IsZero())
		assert.Zero(t, rules.calls, "sources are not consulted for empty intervals")
	})

	t.Run("full discount zeroes the total but not the base", func(t *testing.T) {
		sub := builder.NewSubscriptionBuilder().With(func(b *builder.SubscriptionBuilder) {
			b.Plan = builder.NewPlanBuilder().With(func(p *builder.PlanBuilder) {
				p.DiscountPercentage = "100"
			}).Build()
		}).Build()
		calc := newCalculator(&fakeRuleSource{}, &fakeSubscriptionSource{sub: sub})

		quote, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "0.00", quote.Total.StringFixed(2))
		assert.Equal(t, "300.00", quote.BaseTotal.StringFixed(2))
	})

	t.Run("rules are loaded once per calculation", func(t *testing.T) {
		rules := &fakeRuleSource{}
		calc := newCalculator(rules, &fakeSubscriptionSource{})

		_, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(12*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, rules.calls)
	})

	t.Run("repeated calls are deterministic", func(t *testing.T) {
		ruleA := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
			b.PricePerHour = "90.00"
		}).Build()
		ruleB := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
			b.PricePerHour = "110.00"
		}).Build()
		calc := newCalculator(
			&fakeRuleSource{zoneRules: []*tariff.Rule{ruleB, ruleA}},
			&fakeSubscriptionSource{},
		)

		first, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(4*time.Hour))
		require.NoError(t, err)
		second, err := calc.CalculatePrice(ctx, userID, spotID, start, start.Add(4*time.Hour))
		require.NoError(t, err)
		assert.True(t, first.Total.Equal(second.Total))
		assert.Equal(t, "360.00", first.Total.StringFixed(2))
	})
}
