package tariff

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice      = errors.New("price per hour cannot be negative")
	ErrEmptyCustomDays    = errors.New("custom day type requires at least one day")
	ErrInvalidCustomDay   = errors.New("custom days must be in range 1..7")
	ErrMissingCustomTimes = errors.New("custom time period requires start and end times")
	ErrInvalidDayType     = errors.New("invalid day type")
	ErrInvalidTimePeriod  = errors.New("invalid time period")
)

// Rule asserts a price per hour that holds under the conjunction of a
// validity window, a day-type selector and a time-period selector,
// scoped either zone-wide (nil spot) or to one spot. Rules are
// immutable once created; administrators only flip activity/priority.
type Rule struct {
	id           uuid.UUID
	name         string
	zoneID       uuid.UUID
	spotID       *uuid.UUID
	pricePerHour decimal.Decimal
	priority     int
	isActive     bool
	validFrom    time.Time
	validTo      *time.Time
	dayType      DayType
	customDays   []int // ISO weekdays 1..7, set only for DayTypeCustom
	timePeriod   TimePeriod
	customStart  *TimeOfDay
	customEnd    *TimeOfDay
	createdAt    time.Time
	updatedAt    time.Time
}

type RuleParams struct {
	ID           uuid.UUID
	Name         string
	ZoneID       uuid.UUID
	SpotID       *uuid.UUID
	PricePerHour decimal.Decimal
	Priority     int
	IsActive     bool
	ValidFrom    time.Time
	ValidTo      *time.Time
	DayType      DayType
	CustomDays   []int
	TimePeriod   TimePeriod
	CustomStart  *TimeOfDay
	CustomEnd    *TimeOfDay
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRule validates the well-formedness invariants: custom day types
// carry at least one day, custom time periods carry both bounds.
func NewRule(p RuleParams) (*Rule, error) {
	if !p.DayType.IsValid() {
		return nil, ErrInvalidDayType
	}
	if !p.TimePeriod.IsValid() {
		return nil, ErrInvalidTimePeriod
	}
	if p.PricePerHour.IsNegative() {
		return nil, ErrNegativePrice
	}
	if p.DayType == DayTypeCustom {
		if len(p.CustomDays) == 0 {
			return nil, ErrEmptyCustomDays
		}
		for _, d := range p.CustomDays {
			if d < 1 || d > 7 {
				return nil, ErrInvalidCustomDay
			}
		}
	}
	if p.TimePeriod == PeriodCustom && (p.CustomStart == nil || p.CustomEnd == nil) {
		return nil, ErrMissingCustomTimes
	}
	return ReconstructRule(p), nil
}

// ReconstructRule rebuilds a rule from storage without validation.
// Malformed rows never match (see AppliesAt) instead of failing here,
// so one bad rule cannot break pricing for unrelated reservations.
func ReconstructRule(p RuleParams) *Rule {
	return &Rule{
		id:           p.ID,
		name:         p.Name,
		zoneID:       p.ZoneID,
		spotID:       p.SpotID,
		pricePerHour: p.PricePerHour,
		priority:     p.Priority,
		isActive:     p.IsActive,
		validFrom:    p.ValidFrom,
		validTo:      p.ValidTo,
		dayType:      p.DayType,
		customDays:   p.CustomDays,
		timePeriod:   p.TimePeriod,
		customStart:  p.CustomStart,
		customEnd:    p.CustomEnd,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}
}

// AppliesAt reports whether the rule covers the given instant. Pure
// function of (rule, instant): validity window, day type and time
// period must all hold.
func (r *Rule) AppliesAt(t time.Time) bool {
	return r.validAt(t) && r.matchesDay(t) && r.matchesTime(t)
}

// validAt checks the half-open [validFrom, validTo) window.
func (r *Rule) validAt(t time.Time) bool {
	if t.Before(r.validFrom) {
		return false
	}
	if r.validTo != nil && !t.Before(*r.validTo) {
		return false
	}
	return true
}

func (r *Rule) matchesDay(t time.Time) bool {
	day := isoWeekday(t) // 1=Monday .. 7=Sunday
	switch r.dayType {
	case DayTypeAll:
		return true
	case DayTypeWeekday:
		return day <= 5
	case DayTypeWeekend:
		return day >= 6
	case DayTypeCustom:
		for _, d := range r.customDays {
			if d == day {
				return true
			}
		}
		return false
	default:
		return false
	}
}

var (
	morningStart   = MustTimeOfDay(6, 0)
	afternoonStart = MustTimeOfDay(12, 0)
	eveningStart   = MustTimeOfDay(18, 0)
	nightStart     = MustTimeOfDay(23, 0)
)

func (r *Rule) matchesTime(t time.Time) bool {
	tod := TimeOfDayFrom(t)
	switch r.timePeriod {
	case PeriodAllDay:
		return true
	case PeriodMorning:
		return tod.InHalfOpen(morningStart, afternoonStart)
	case PeriodAfternoon:
		return tod.InHalfOpen(afternoonStart, eveningStart)
	case PeriodEvening:
		return tod.InHalfOpen(eveningStart, nightStart)
	case PeriodNight:
		return tod.AtOrAfter(nightStart) || tod.Before(morningStart)
	case PeriodCustom:
		// Fail closed when bounds are missing. Custom periods do not
		// wrap midnight: start >= end never matches.
		if r.customStart == nil || r.customEnd == nil {
			return false
		}
		return tod.InHalfOpen(*r.customStart, *r.customEnd)
	default:
		return false
	}
}

func (r *Rule) IsSpotScoped() bool {
	return r.spotID != nil
}

func (r *Rule) ID() uuid.UUID                 { return r.id }
func (r *Rule) Name() string                  { return r.name }
func (r *Rule) ZoneID() uuid.UUID             { return r.zoneID }
func (r *Rule) SpotID() *uuid.UUID            { return r.spotID }
func (r *Rule) PricePerHour() decimal.Decimal { return r.pricePerHour }
func (r *Rule) Priority() int                 { return r.priority }
func (r *Rule) IsActive() bool                { return r.isActive }
func (r *Rule) ValidFrom() time.Time          { return r.validFrom }
func (r *Rule) ValidTo() *time.Time           { return r.validTo }
func (r *Rule) DayType() DayType              { return r.dayType }
func (r *Rule) CustomDays() []int             { return r.customDays }
func (r *Rule) TimePeriod() TimePeriod        { return r.timePeriod }
func (r *Rule) CustomStart() *TimeOfDay       { return r.customStart }
func (r *Rule) CustomEnd() *TimeOfDay         { return r.customEnd }
func (r *Rule) CreatedAt() time.Time          { return r.createdAt }
func (r *Rule) UpdatedAt() time.Time          { return r.updatedAt }
