package tariff

// DayType selects which days of the week a rule covers.
type DayType string

const (
	DayTypeAll     DayType = "all"
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	DayTypeCustom  DayType = "custom"
)

func (d DayType) String() string {
	return string(d)
}

func (d DayType) IsValid() bool {
	switch d {
	case DayTypeAll, DayTypeWeekday, DayTypeWeekend, DayTypeCustom:
		return true
	default:
		return false
	}
}

// TimePeriod selects which part of the day a rule covers. The built-in
// periods use fixed boundaries; night is the only one wrapping midnight.
type TimePeriod string

const (
	PeriodAllDay    TimePeriod = "all_day"
	PeriodMorning   TimePeriod = "morning"   // 06:00-12:00
	PeriodAfternoon TimePeriod = "afternoon" // 12:00-18:00
	PeriodEvening   TimePeriod = "evening"   // 18:00-23:00
	PeriodNight     TimePeriod = "night"     // 23:00-06:00, wraps midnight
	PeriodCustom    TimePeriod = "custom"
)

func (p TimePeriod) String() string {
	return string(p)
}

func (p TimePeriod) IsValid() bool {
	switch p {
	case PeriodAllDay, PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight, PeriodCustom:
		return true
	default:
		return false
	}
}
