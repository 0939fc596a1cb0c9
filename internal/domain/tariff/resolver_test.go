//go:build unit

package tariff_test

import (
	"testing"
	"time"

	"smart-parking/internal/domain/tariff"
	"smart-parking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRule(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	spotID := uuid.New()

	t.Run("spot scope beats zone scope regardless of priority", func(t *testing.T) {
		spotRule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.SpotID = &spotID
			b.Priority = 1
			b.PricePerHour = "80.00"
		}).Build()
		zoneRule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.Priority = 100
			b.PricePerHour = "200.00"
		}).Build()

		got := tariff.ResolveRule([]*tariff.Rule{spotRule}, []*tariff.Rule{zoneRule}, now)
		require.NotNil(t, got)
		assert.Equal(t, spotRule.ID(), got.ID())
	})

	t.Run("falls back to zone scope when no spot rule matches", func(t *testing.T) {
		weekendSpotRule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.SpotID = &spotID
			b.DayType = tariff.DayTypeWeekend
		}).Build()
		zoneRule := builder.NewRuleBuilder().Build()

		got := tariff.ResolveRule([]*tariff.Rule{weekendSpotRule}, []*tariff.Rule{zoneRule}, now)
		require.NotNil(t, got)
		assert.Equal(t, zoneRule.ID(), got.ID())
	})

	t.Run("higher priority wins within a scope", func(t *testing.T) {
		low := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) { b.Priority = 5 }).Build()
		high := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) { b.Priority = 50 }).Build()

		got := tariff.ResolveRule(nil, []*tariff.Rule{low, high}, now)
		require.NotNil(t, got)
		assert.Equal(t, high.ID(), got.ID())
	})

	t.Run("equal priority breaks ties by smallest rule ID", func(t *testing.T) {
		smaller := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
		}).Build()
		larger := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
		}).Build()

		// Order of the input slice must not matter.
		first := tariff.ResolveRule(nil, []*tariff.Rule{larger, smaller}, now)
		second := tariff.ResolveRule(nil, []*tariff.Rule{smaller, larger}, now)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, smaller.ID(), first.ID())
		assert.Equal(t, smaller.ID(), second.ID())
	})

	t.Run("nil when nothing matches", func(t *testing.T) {
		weekend := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = tariff.DayTypeWeekend
		}).Build()
		assert.Nil(t, tariff.ResolveRule(nil, []*tariff.Rule{weekend}, now))
		assert.Nil(t, tariff.ResolveRule(nil, nil, now))
	})
}
