//go:build unit

package tariff_test

import (
	"testing"
	"time"

	"smart-parking/internal/domain/tariff"
	"smart-parking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// All instants below use fixed 2025 dates: 2025-06-02 is a Monday,
// 2025-06-07 a Saturday.
var (
	monNoon = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	satNoon = time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
)

func TestRuleValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.RuleBuilder)
		errIs  error
	}{
		{
			name:   "well formed rule",
			mutate: func(b *builder.RuleBuilder) {},
		},
		{
			name:   "negative price rejected",
			mutate: func(b *builder.RuleBuilder) { b.PricePerHour = "-1.00" },
			errIs:  tariff.ErrNegativePrice,
		},
		{
			name: "custom day type without days rejected",
			mutate: func(b *builder.RuleBuilder) {
				b.DayType = tariff.DayTypeCustom
				b.CustomDays = nil
			},
			errIs: tariff.ErrEmptyCustomDays,
		},
		{
			name: "custom day out of ISO range rejected",
			mutate: func(b *builder.RuleBuilder) {
				b.DayType = tariff.DayTypeCustom
				b.CustomDays = []int{0}
			},
			errIs: tariff.ErrInvalidCustomDay,
		},
		{
			name: "custom period without bounds rejected",
			mutate: func(b *builder.RuleBuilder) {
				b.TimePeriod = tariff.PeriodCustom
				b.CustomStart = nil
				b.CustomEnd = nil
			},
			errIs: tariff.ErrMissingCustomTimes,
		},
		{
			name:   "unknown day type rejected",
			mutate: func(b *builder.RuleBuilder) { b.DayType = "holiday" },
			errIs:  tariff.ErrInvalidDayType,
		},
		{
			name:   "unknown time period rejected",
			mutate: func(b *builder.RuleBuilder) { b.TimePeriod = "lunch" },
			errIs:  tariff.ErrInvalidTimePeriod,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewRuleBuilder()
			tt.mutate(b)
			_, err := tariff.NewRule(tariff.RuleParams{
				ID:           b.ID,
				Name:         b.Name,
				ZoneID:       b.ZoneID,
				SpotID:       b.SpotID,
				PricePerHour: mustDecimal(t, b.PricePerHour),
				Priority:     b.Priority,
				IsActive:     b.IsActive,
				ValidFrom:    b.ValidFrom,
				ValidTo:      b.ValidTo,
				DayType:      b.DayType,
				CustomDays:   b.CustomDays,
				TimePeriod:   b.TimePeriod,
				CustomStart:  b.CustomStart,
				CustomEnd:    b.CustomEnd,
			})
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRuleValidityWindow(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
		b.ValidFrom = from
		b.ValidTo = &to
	}).Build()

	assert.False(t, rule.AppliesAt(from.Add(-time.Minute)), "before validFrom")
	assert.True(t, rule.AppliesAt(from), "validFrom is inclusive")
	assert.True(t, rule.AppliesAt(to.Add(-time.Minute)))
	assert.False(t, rule.AppliesAt(to), "validTo is exclusive")

	openEnded := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
		b.ValidFrom = from
		b.ValidTo = nil
	}).Build()
	assert.True(t, openEnded.AppliesAt(from.AddDate(10, 0, 0)))
}

func TestRuleDayMatching(t *testing.T) {
	friLateNight := time.Date(2025, 6, 6, 23, 59, 0, 0, time.UTC)
	satMidnight := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	t.Run("weekday boundary", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = tariff.DayTypeWeekday
		}).Build()
		assert.True(t, rule.AppliesAt(monNoon))
		assert.True(t, rule.AppliesAt(friLateNight), "Friday 23:59 is still a weekday")
		assert.False(t, rule.AppliesAt(satMidnight), "Saturday 00:00 is weekend")
	})

	t.Run("weekend boundary", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = tariff.DayTypeWeekend
		}).Build()
		assert.False(t, rule.AppliesAt(friLateNight))
		assert.True(t, rule.AppliesAt(satMidnight))
		assert.True(t, rule.AppliesAt(satNoon))
	})

	t.Run("custom days use ISO numbering", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = tariff.DayTypeCustom
			b.CustomDays = []int{1, 7} // Monday and Sunday
		}).Build()
		sunNoon := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
		assert.True(t, rule.AppliesAt(monNoon))
		assert.True(t, rule.AppliesAt(sunNoon))
		assert.False(t, rule.AppliesAt(satNoon))
	})
}

func TestRuleTimeMatching(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	}

	t.Run("built-in periods are half-open", func(t *testing.T) {
		morning := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodMorning
		}).Build()
		assert.False(t, morning.AppliesAt(at(5, 59)))
		assert.True(t, morning.AppliesAt(at(6, 0)))
		assert.True(t, morning.AppliesAt(at(11, 59)))
		assert.False(t, morning.AppliesAt(at(12, 0)), "noon belongs to afternoon")
	})

	t.Run("night wraps midnight", func(t *testing.T) {
		night := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodNight
		}).Build()
		assert.True(t, night.AppliesAt(at(23, 30)))
		assert.True(t, night.AppliesAt(at(0, 0)))
		assert.True(t, night.AppliesAt(at(5, 30)))
		assert.False(t, night.AppliesAt(at(6, 0)))
		assert.False(t, night.AppliesAt(at(12, 0)))
	})

	t.Run("custom period does not wrap", func(t *testing.T) {
		start := tariff.MustTimeOfDay(22, 0)
		end := tariff.MustTimeOfDay(4, 0)
		inverted := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodCustom
			b.CustomStart = &start
			b.CustomEnd = &end
		}).Build()
		assert.False(t, inverted.AppliesAt(at(23, 0)))
		assert.False(t, inverted.AppliesAt(at(2, 0)))
	})

	t.Run("custom period within a day", func(t *testing.T) {
		start := tariff.MustTimeOfDay(9, 0)
		end := tariff.MustTimeOfDay(17, 30)
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodCustom
			b.CustomStart = &start
			b.CustomEnd = &end
		}).Build()
		assert.True(t, rule.AppliesAt(at(9, 0)))
		assert.True(t, rule.AppliesAt(at(17, 29)))
		assert.False(t, rule.AppliesAt(at(17, 30)))
	})
}

// Malformed rows reconstructed from storage never match.
func TestRuleFailsClosed(t *testing.T) {
	t.Run("custom period missing bounds", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.TimePeriod = tariff.PeriodCustom
			b.CustomStart = nil
			b.CustomEnd = nil
		}).Build()
		assert.False(t, rule.AppliesAt(monNoon))
	})

	t.Run("custom day type with empty days", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = tariff.DayTypeCustom
			b.CustomDays = nil
		}).Build()
		assert.False(t, rule.AppliesAt(monNoon))
	})

	t.Run("unknown enum values", func(t *testing.T) {
		rule := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.DayType = "holiday"
		}).Build()
		assert.False(t, rule.AppliesAt(monNoon))
	})
}
