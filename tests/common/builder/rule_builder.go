//go:build unit

package builder

import (
	"time"

	"smart-parking/internal/domain/tariff"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RuleBuilder struct {
	ID           uuid.UUID
	Name         string
	ZoneID       uuid.UUID
	SpotID       *uuid.UUID
	PricePerHour string
	Priority     int
	IsActive     bool
	ValidFrom    time.Time
	ValidTo      *time.Time
	DayType      tariff.DayType
	CustomDays   []int
	TimePeriod   tariff.TimePeriod
	CustomStart  *tariff.TimeOfDay
	CustomEnd    *tariff.TimeOfDay
}

func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{
		ID:           uuid.New(),
		Name:         "standard rate",
		ZoneID:       uuid.New(),
		PricePerHour: "150.00",
		Priority:     10,
		IsActive:     true,
		ValidFrom:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DayType:      tariff.DayTypeAll,
		TimePeriod:   tariff.PeriodAllDay,
	}
}

func (b *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(b)
	return b
}

func (b *RuleBuilder) Build() *tariff.Rule {
	return tariff.ReconstructRule(tariff.RuleParams{
		ID:           b.ID,
		Name:         b.Name,
		ZoneID:       b.ZoneID,
		SpotID:       b.SpotID,
		PricePerHour: decimal.RequireFromString(b.PricePerHour),
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
}
